package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     string
	Metadata     any
}

// Sink persiste eventos de auditoria.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity_id", ev.EntityID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch never blocks the request path; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	defer func() {
		if recover() != nil {
			d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains pending events and stops the worker.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
