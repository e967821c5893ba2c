package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

type LinkService struct {
	store    ports.LinkStore
	queries  *QueryEngine
	sampler  *Sampler
	observer ports.OperationObserver
	log      *zap.Logger
}

// Option customises a LinkService.
type Option func(*LinkService)

// WithSampler replaces the randomly seeded sampler used by Discover.
func WithSampler(s *Sampler) Option {
	return func(ls *LinkService) { ls.sampler = s }
}

// WithObserver reports every write outcome to o.
func WithObserver(o ports.OperationObserver) Option {
	return func(ls *LinkService) { ls.observer = o }
}

func NewLinkService(store ports.LinkStore, log *zap.Logger, opts ...Option) *LinkService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &LinkService{
		store:   store,
		queries: NewQueryEngine(store),
		sampler: NewSampler(nil),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts link as a new record; any id it carries is discarded.
func (s *LinkService) Add(ctx context.Context, link domain.Link) (*domain.Link, error) {
	link.ID = 0
	link.Tags = domain.NormalizeTags(link.Tags)

	err := link.Validate()
	if err == nil {
		err = s.store.Add(ctx, &link)
	}
	if err := s.written("add", link.Title, err); err != nil {
		return nil, err
	}
	return &link, nil
}

// Replace overwrites every field of the link stored under link.ID.
func (s *LinkService) Replace(ctx context.Context, link domain.Link) (*domain.Link, error) {
	link.Tags = domain.NormalizeTags(link.Tags)

	var err error
	if link.ID <= 0 {
		err = fmt.Errorf("%w: %d", domain.ErrInvalidID, link.ID)
	} else if err = link.Validate(); err == nil {
		err = s.store.Put(ctx, &link)
	}
	if err := s.written("edit", link.Title, err); err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete removes the link. Failures are logged under the article's title
// when it can still be read.
func (s *LinkService) Delete(ctx context.Context, id int64) error {
	subject := fmt.Sprintf("#%d", id)
	if link, err := s.queries.Get(ctx, id); err == nil {
		subject = link.Title
	}
	return s.written("delete", subject, s.store.Delete(ctx, id))
}

func (s *LinkService) Get(ctx context.Context, id int64) (*domain.Link, error) {
	return s.queries.Get(ctx, id)
}

func (s *LinkService) Query(ctx context.Context, index, match string) ([]domain.Link, error) {
	return s.queries.Query(ctx, index, match)
}

func (s *LinkService) DistinctValues(ctx context.Context, index string) ([]string, error) {
	return s.queries.DistinctValues(ctx, index)
}

func (s *LinkService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// Discover returns up to count links chosen at random.
func (s *LinkService) Discover(ctx context.Context, count int) ([]domain.Link, error) {
	ids, err := s.queries.IDs(ctx)
	if err != nil {
		return nil, err
	}
	return s.queries.Fetch(ctx, s.sampler.Sample(ids, count))
}

func (s *LinkService) Export(ctx context.Context) ([]domain.Link, error) {
	return s.store.Dump(ctx)
}

// Import adds every link as a new record and returns how many were stored.
// Failures are logged and skipped; their errors are joined in the result.
func (s *LinkService) Import(ctx context.Context, links []domain.Link) (int, error) {
	count := 0
	var errs []error
	for _, l := range links {
		if _, err := s.Add(ctx, l); err != nil {
			errs = append(errs, err)
			continue
		}
		count++
	}
	return count, errors.Join(errs...)
}

// written logs and reports the outcome of a write. It returns err unchanged.
func (s *LinkService) written(action, subject string, err error) error {
	if s.observer != nil {
		s.observer.ObserveOperation(action, err)
	}
	if err != nil {
		s.log.Error("Error with "+action+" for article",
			zap.String("article", subject),
			zap.Error(err),
		)
	}
	return err
}

// Ensure interface compliance
var _ ports.LinkService = (*LinkService)(nil)
