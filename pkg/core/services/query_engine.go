package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

// QueryEngine runs cursor scans over the link store and materializes them.
type QueryEngine struct {
	store ports.LinkStore
}

func NewQueryEngine(store ports.LinkStore) *QueryEngine {
	return &QueryEngine{store: store}
}

// Query scans every link when index is empty, every entry of index when
// match is empty, and otherwise only the entries whose key equals match.
func (q *QueryEngine) Query(ctx context.Context, index, match string) ([]domain.Link, error) {
	scope := ports.All()
	switch {
	case index == "":
	case match == "":
		scope = ports.ByIndex(index)
	default:
		scope = ports.IndexEquals(index, match)
	}
	return q.collect(ctx, scope)
}

// Get looks up a single link by id.
func (q *QueryEngine) Get(ctx context.Context, id int64) (*domain.Link, error) {
	links, err := q.collect(ctx, ports.KeyEquals(id))
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrLinkNotFound, id)
	}
	return &links[0], nil
}

// Fetch looks up each id in order. Ids that no longer exist are skipped.
func (q *QueryEngine) Fetch(ctx context.Context, ids []int64) ([]domain.Link, error) {
	links := make([]domain.Link, 0, len(ids))
	for _, id := range ids {
		link, err := q.Get(ctx, id)
		if errors.Is(err, domain.ErrLinkNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, nil
}

// DistinctValues walks an index and returns each key once, in index order.
// An empty index name walks the primary key.
func (q *QueryEngine) DistinctValues(ctx context.Context, index string) ([]string, error) {
	scope := ports.ByIndex(index)
	if index == "" {
		scope = ports.All()
	}

	c, err := q.store.OpenCursor(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	seen := make(map[string]struct{})
	values := []string{}
	for c.Next() {
		key := c.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, key)
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("walk %q index: %w", index, err)
	}
	return values, nil
}

// IDs returns the id of every link in primary key order.
func (q *QueryEngine) IDs(ctx context.Context) ([]int64, error) {
	c, err := q.store.OpenCursor(ctx, ports.All())
	if err != nil {
		return nil, err
	}
	defer c.Close()

	ids := []int64{}
	for c.Next() {
		ids = append(ids, c.Link().ID)
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("walk ids: %w", err)
	}
	return ids, nil
}

// collect drains the cursor before returning, so callers only see complete results.
func (q *QueryEngine) collect(ctx context.Context, scope ports.Scope) ([]domain.Link, error) {
	c, err := q.store.OpenCursor(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	links := []domain.Link{}
	for c.Next() {
		links = append(links, c.Link())
	}
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("scan links: %w", err)
	}
	return links, nil
}
