package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskResolvesOnce(t *testing.T) {
	calls := 0
	task := Go(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	v, err := task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	<-task.Done()
	v, err = task.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestTaskCarriesError(t *testing.T) {
	boom := errors.New("boom")
	task := Go(context.Background(), func(ctx context.Context) ([]string, error) {
		return nil, boom
	})

	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestTaskWaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	task := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	task.Cancel()
	select {
	case <-task.Done():
		t.Fatal("Cancel must not resolve the task")
	default:
	}
}
