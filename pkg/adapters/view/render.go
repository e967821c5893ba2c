package view

import (
	"bytes"
	"io"
	"net/url"
	"strconv"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

type pageData struct {
	Page *domain.Page
	Form domain.Form
}

// RenderTable writes the results table for links.
func RenderTable(w io.Writer, links []domain.Link) error {
	return render(w, "table", links)
}

// RenderPage writes the whole page. The form is filled from page.Editing,
// or cleared when nothing is being edited.
func RenderPage(w io.Writer, page *domain.Page) error {
	data := pageData{Page: page, Form: ClearForm()}
	if page.Editing != nil {
		data.Form = WriteForm(*page.Editing)
	}
	return render(w, "page", data)
}

// render executes into a buffer so a failed template never leaves half a page behind.
func render(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// ReadForm collects the input form fields.
func ReadForm(values url.Values) domain.Form {
	return domain.Form{
		ID:       values.Get("id"),
		Title:    values.Get("title"),
		URL:      values.Get("url"),
		Author:   values.Get("author"),
		Tags:     values.Get("tags"),
		Comments: values.Get("comments"),
	}
}

// WriteForm fills the input form for editing link.
func WriteForm(link domain.Link) domain.Form {
	return domain.Form{
		ID:       strconv.FormatInt(link.ID, 10),
		Title:    link.Title,
		URL:      link.URL,
		Author:   link.Author,
		Tags:     domain.JoinTags(link.Tags),
		Comments: link.Comments,
	}
}

// ClearForm returns an empty form; saving it adds a new link.
func ClearForm() domain.Form {
	return domain.Form{}
}
