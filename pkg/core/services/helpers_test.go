package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/weblinks/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

// storeSeq keeps stores opened by the same test apart.
var storeSeq atomic.Int64

func newTestStore(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	n := storeSeq.Add(1)
	repo, err := sqlite.NewSQLiteRepository(fmt.Sprintf("file:svc_%s_%d?mode=memory&cache=shared", name, n))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func mustAdd(t *testing.T, s *LinkService, link domain.Link) *domain.Link {
	t.Helper()
	added, err := s.Add(context.Background(), link)
	require.NoError(t, err)
	return added
}

func titles(links []domain.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Title)
	}
	return out
}
