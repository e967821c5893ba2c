package domain

import (
	"fmt"
	"strings"
)

// Form holds the raw values of the link input form.
// A blank ID marks a new link.
type Form struct {
	ID       string
	Title    string
	URL      string
	Author   string
	Tags     string
	Comments string
}

// IsNew reports whether saving the form should insert rather than replace.
func (f Form) IsNew() bool {
	return strings.TrimSpace(f.ID) == ""
}

// Confirmation is a delete staged for the user to confirm.
type Confirmation struct {
	ID    int64
	Title string
}

// Message is the prompt shown with the confirmation.
func (c Confirmation) Message() string {
	return fmt.Sprintf("Are you sure you want to delete the article: %s?", c.Title)
}

// Filter records which index lookup produced the displayed links.
type Filter struct {
	Index string
	Value string
}

// Page is everything the UI shows after one intent has been handled.
type Page struct {
	Count   int64
	Authors []string
	Tags    []string
	Links   []Link
	Editing *Link // nil shows a cleared form
	Confirm *Confirmation
	Filter  Filter
}

// Status is the text for the status region.
func (p *Page) Status() string {
	return fmt.Sprintf("Status: %d articles available.", p.Count)
}
