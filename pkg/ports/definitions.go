package ports

import (
	"context"
	"strconv"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

// Scope selects which entries a cursor walks.
// The zero value walks every link in primary key order.
type Scope struct {
	Index string // "" walks the primary key
	Value string // exact key to match, only used when Exact is set
	Exact bool
}

// All walks every link by id.
func All() Scope { return Scope{} }

// KeyEquals walks the single link with the given id.
func KeyEquals(id int64) Scope {
	return Scope{Value: strconv.FormatInt(id, 10), Exact: true}
}

// ByIndex walks every entry of an index in key order.
func ByIndex(index string) Scope { return Scope{Index: index} }

// IndexEquals walks the entries of an index whose key equals value.
func IndexEquals(index, value string) Scope {
	return Scope{Index: index, Value: value, Exact: true}
}

// Cursor is a forward-only walk over a scope. Callers must Close it.
type Cursor interface {
	Next() bool
	// Key is the index key of the current entry, or the decimal id on the primary key.
	Key() string
	Link() domain.Link
	Err() error
	Close() error
}

// LinkStore defines storage operations for links
type LinkStore interface {
	Add(ctx context.Context, link *domain.Link) error
	Put(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	OpenCursor(ctx context.Context, scope Scope) (Cursor, error)
	Dump(ctx context.Context) ([]domain.Link, error) // For migration
	Close() error
}

// OperationObserver is told the outcome of every store write.
type OperationObserver interface {
	ObserveOperation(action string, err error)
}

// LinkService defines the business logic operations
type LinkService interface {
	Add(ctx context.Context, link domain.Link) (*domain.Link, error)
	Replace(ctx context.Context, link domain.Link) (*domain.Link, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Link, error)
	Query(ctx context.Context, index, match string) ([]domain.Link, error)
	DistinctValues(ctx context.Context, index string) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Discover(ctx context.Context, count int) ([]domain.Link, error)
	Export(ctx context.Context) ([]domain.Link, error)
	Import(ctx context.Context, links []domain.Link) (int, error)
}

// Controller maps page intents onto the link service.
type Controller interface {
	Load(ctx context.Context) (*domain.Page, error)
	AddIntent(ctx context.Context) (*domain.Page, error)
	Save(ctx context.Context, form domain.Form) (*domain.Page, error)
	Filter(ctx context.Context, index, value string) (*domain.Page, error)
	GetAll(ctx context.Context) (*domain.Page, error)
	RowAction(ctx context.Context, action string, id int64) (*domain.Page, error)
	ConfirmDelete(ctx context.Context, id int64) (*domain.Page, error)
}
