package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEventLoop_RunsInOrderOnOneGoroutine(t *testing.T) {
	l := NewEventLoop(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(stopped)
	}()

	var got []int
	var wg sync.WaitGroup
	wg.Add(1)
	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(wg.Done)
	wg.Wait()

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestEventLoop_RecoversPanics(t *testing.T) {
	l := NewEventLoop(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Start(ctx)

	done := make(chan struct{})
	l.Post(func() { panic("boom") })
	l.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop died after panic")
	}
}

func TestEventLoop_CloseDrainsAndDropsLatePosts(t *testing.T) {
	l := NewEventLoop(zap.NewNop())
	ran := 0
	l.Post(func() { ran++ })
	l.Post(func() { ran++ })
	l.Close()
	l.Post(func() { ran += 100 })

	l.Start(context.Background())
	require.Equal(t, 2, ran)
}
