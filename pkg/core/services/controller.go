package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

// DefaultDiscoverCount is how many random links the initial page shows.
const DefaultDiscoverCount = 5

// Controller turns page intents into link service calls and page models.
type Controller struct {
	links         ports.LinkService
	discoverCount int
	log           *zap.Logger
}

func NewController(links ports.LinkService, discoverCount int, log *zap.Logger) *Controller {
	if discoverCount <= 0 {
		discoverCount = DefaultDiscoverCount
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{links: links, discoverCount: discoverCount, log: log}
}

// Load builds the first page: a random sample instead of the full list.
func (c *Controller) Load(ctx context.Context) (*domain.Page, error) {
	return c.page(ctx, func(ctx context.Context) ([]domain.Link, error) {
		return c.links.Discover(ctx, c.discoverCount)
	})
}

// AddIntent shows every link with a cleared form.
func (c *Controller) AddIntent(ctx context.Context) (*domain.Page, error) {
	return c.refresh(ctx)
}

func (c *Controller) GetAll(ctx context.Context) (*domain.Page, error) {
	return c.refresh(ctx)
}

// Save inserts the form when it has no id and replaces the stored link otherwise.
func (c *Controller) Save(ctx context.Context, form domain.Form) (*domain.Page, error) {
	link := domain.Link{
		Title:    form.Title,
		URL:      form.URL,
		Author:   form.Author,
		Tags:     domain.ParseTags(form.Tags),
		Comments: form.Comments,
	}

	var err error
	if form.IsNew() {
		_, err = c.links.Add(ctx, link)
	} else {
		link.ID, err = parseID(form.ID)
		if err == nil {
			_, err = c.links.Replace(ctx, link)
		}
	}
	if err != nil {
		return nil, err
	}
	return c.refresh(ctx)
}

// Filter shows the links whose index key equals value.
func (c *Controller) Filter(ctx context.Context, index, value string) (*domain.Page, error) {
	if index != domain.IndexAuthor && index != domain.IndexTags {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownIndex, index)
	}

	page, err := c.page(ctx, func(ctx context.Context) ([]domain.Link, error) {
		return c.links.Query(ctx, index, value)
	})
	if err != nil {
		return nil, err
	}
	page.Filter = domain.Filter{Index: index, Value: value}
	return page, nil
}

// RowAction handles the edit and delete controls of a table row.
// Both read the stored link rather than the rendered row.
func (c *Controller) RowAction(ctx context.Context, action string, id int64) (*domain.Page, error) {
	action = strings.ToLower(action)
	if action != "edit" && action != "delete" {
		c.log.Warn("Unexpected request. No action taken", zap.String("action", action), zap.Int64("id", id))
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, action)
	}

	link, err := c.links.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	page, err := c.refresh(ctx)
	if err != nil {
		return nil, err
	}

	if action == "edit" {
		page.Editing = link
	} else {
		page.Confirm = &domain.Confirmation{ID: link.ID, Title: link.Title}
	}
	return page, nil
}

// ConfirmDelete removes the staged link.
func (c *Controller) ConfirmDelete(ctx context.Context, id int64) (*domain.Page, error) {
	if err := c.links.Delete(ctx, id); err != nil {
		return nil, err
	}
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) (*domain.Page, error) {
	return c.page(ctx, func(ctx context.Context) ([]domain.Link, error) {
		return c.links.Query(ctx, "", "")
	})
}

// page runs the status, selector and table reads as tasks and assembles the
// page once all of them have resolved.
func (c *Controller) page(ctx context.Context, rows func(context.Context) ([]domain.Link, error)) (*domain.Page, error) {
	count := Go(ctx, c.links.Count)
	authors := Go(ctx, func(ctx context.Context) ([]string, error) {
		return c.links.DistinctValues(ctx, domain.IndexAuthor)
	})
	tags := Go(ctx, func(ctx context.Context) ([]string, error) {
		return c.links.DistinctValues(ctx, domain.IndexTags)
	})
	links := Go(ctx, rows)

	page := &domain.Page{}
	var errCount, errAuthors, errTags, errLinks error
	page.Count, errCount = count.Wait(ctx)
	page.Authors, errAuthors = authors.Wait(ctx)
	page.Tags, errTags = tags.Wait(ctx)
	page.Links, errLinks = links.Wait(ctx)

	if err := errors.Join(errCount, errAuthors, errTags, errLinks); err != nil {
		return nil, err
	}
	return page, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

// Ensure interface compliance
var _ ports.Controller = (*Controller)(nil)
