package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

const linkColumns = `l.id, l.title, l.url, l.author, l.tags, l.comments`

// cursorQuery builds the statement for a scope. Every statement selects the
// entry key first, followed by linkColumns.
func cursorQuery(scope ports.Scope) (string, []interface{}, error) {
	var query string
	args := []interface{}{}

	switch scope.Index {
	case "":
		query = `SELECT CAST(l.id AS TEXT), ` + linkColumns + ` FROM links l`
		if scope.Exact {
			id, err := strconv.ParseInt(scope.Value, 10, 64)
			if err != nil {
				return "", nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, scope.Value)
			}
			query += ` WHERE l.id = ?`
			args = append(args, id)
		}
		query += ` ORDER BY l.id`

	case domain.IndexAuthor:
		query = `SELECT l.author, ` + linkColumns + ` FROM links l`
		if scope.Exact {
			query += ` WHERE l.author = ?`
			args = append(args, scope.Value)
		}
		query += ` ORDER BY l.author, l.id`

	case domain.IndexTags:
		query = `SELECT lt.tag, ` + linkColumns + `
				 FROM link_tags lt
				 JOIN links l ON l.id = lt.link_id`
		if scope.Exact {
			query += ` WHERE lt.tag = ?`
			args = append(args, scope.Value)
		}
		query += ` ORDER BY lt.tag, lt.link_id`

	default:
		return "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownIndex, scope.Index)
	}

	return query, args, nil
}

func scopeName(scope ports.Scope) string {
	if scope.Index == "" {
		return "id"
	}
	return scope.Index
}

type cursor struct {
	rows *sql.Rows
	key  string
	link domain.Link
	err  error
}

func (c *cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}

	var l domain.Link
	var tagsJSON []byte
	if err := c.rows.Scan(&c.key, &l.ID, &l.Title, &l.URL, &l.Author, &tagsJSON, &l.Comments); err != nil {
		c.err = err
		return false
	}
	l.Tags = decodeTags(tagsJSON)
	c.link = l
	return true
}

func (c *cursor) Key() string { return c.key }

func (c *cursor) Link() domain.Link { return c.link }

func (c *cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *cursor) Close() error { return c.rows.Close() }
