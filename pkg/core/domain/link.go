package domain

import (
	"strings"
	"unicode"
)

// Index names understood by the link store.
const (
	IndexAuthor = "author"
	IndexTags   = "tags"
)

// Link is a saved web article.
type Link struct {
	ID       int64    `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	URL      string   `json:"url" yaml:"url"`
	Author   string   `json:"author" yaml:"author"`
	Tags     []string `json:"tags" yaml:"tags"` // Stored as JSON text in SQLite
	Comments string   `json:"comments" yaml:"comments"`
}

// Validate checks the fields a link must carry before it is written.
func (l *Link) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// ParseTags turns comma separated user input into index tokens.
// All whitespace is removed and the tokens are lower-cased; empty tokens are dropped.
func ParseTags(raw string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(raw))

	tags := []string{}
	for _, tag := range strings.Split(cleaned, ",") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeTags applies the ParseTags rules to tags that arrive already split.
func NormalizeTags(tags []string) []string {
	return ParseTags(strings.Join(tags, ","))
}

// JoinTags renders tags for display.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
