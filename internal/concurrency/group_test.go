package concurrency

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAll(t *testing.T) {
	var n atomic.Int32
	task := func(context.Context) error {
		n.Add(1)
		return nil
	}

	require.NoError(t, Run(context.Background(), 2, task, task, task))
	assert.Equal(t, int32(3), n.Load())
}

func TestRunRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	release := make(chan struct{})
	task := func(context.Context) error {
		cur := running.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		<-release
		running.Add(-1)
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), 2, task, task, task, task) }()
	close(release)

	require.NoError(t, <-done)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), 0,
		func(context.Context) error { return boom },
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	)
	assert.ErrorIs(t, err, boom)
}
