package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
)

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: 9", domain.ErrLinkNotFound), http.StatusNotFound},
		{domain.ErrTitleRequired, http.StatusBadRequest},
		{domain.ErrInvalidID, http.StatusBadRequest},
		{domain.ErrUnknownIndex, http.StatusBadRequest},
		{domain.ErrUnknownAction, http.StatusBadRequest},
		{errors.New("database is locked"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		writeError(rr, httptest.NewRequest(http.MethodGet, "/links", nil), zap.NewNop(), tt.err)
		assert.Equal(t, tt.want, rr.Code, tt.err.Error())
	}
}

func TestWriteErrorLogsUserAndRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	req := httptest.NewRequest(http.MethodPost, "/links", nil)
	ctx := context.WithValue(req.Context(), requestIDKey, "req-1")
	ctx = context.WithValue(ctx, userEmailKey, "ann@example.com")

	writeError(httptest.NewRecorder(), req.WithContext(ctx), zap.New(core), errors.New("database is locked"))
	writeError(httptest.NewRecorder(), req.WithContext(ctx), zap.New(core), domain.ErrTitleRequired)

	entries := logs.All()
	require.Len(t, entries, 1, "only server-side failures are logged")
	fields := entries[0].ContextMap()
	assert.Equal(t, "ann@example.com", fields["user"])
	assert.Equal(t, "req-1", fields["request_id"])
}
