package worker

import (
	"context"
	"sync"

	"cnythb-converter/internal/application"
	"cnythb-converter/internal/infrastructure/logx"

	"go.uber.org/zap"
)

const defaultQueueSize = 64

// EventLoop runs posted closures one at a time on the goroutine that called
// Start. It is the display goroutine of a Session.
type EventLoop struct {
	events chan func()
	log    *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

var (
	_ application.Dispatcher = (*EventLoop)(nil)
	_ application.Worker     = (*EventLoop)(nil)
)

func NewEventLoop(log *zap.Logger) *EventLoop {
	if log == nil {
		log = logx.L()
	}
	return &EventLoop{
		events: make(chan func(), defaultQueueSize),
		log:    log.With(zap.String("worker", "eventloop")),
		done:   make(chan struct{}),
	}
}

// Post enqueues fn. Closures posted after Close are dropped.
func (l *EventLoop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.events <- fn:
	case <-l.done:
	}
}

// Close stops accepting events; Start returns once the queue is drained.
func (l *EventLoop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *EventLoop) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.log.Info("eventloop.stop")
			return
		case fn := <-l.events:
			l.run(fn)
		case <-l.done:
			l.drain()
			l.log.Info("eventloop.closed")
			return
		}
	}
}

func (l *EventLoop) drain() {
	for {
		select {
		case fn := <-l.events:
			l.run(fn)
		default:
			return
		}
	}
}

func (l *EventLoop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Warn("eventloop.panic", zap.Any("r", r))
		}
	}()
	fn()
}
