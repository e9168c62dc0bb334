package notification

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Severity classifies a notification for whatever surface ends up displaying it.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a single out-of-band message for the user of the currently
// mounted view.
type Notification struct {
	Severity  Severity
	Message   string
	Timestamp time.Time
}

// Notifier is the capability handed to components that need to surface errors
// to the user without threading a UI handle through every signature. It is
// always injected explicitly, never read from a global.
type Notifier interface {
	Notify(ctx context.Context, severity Severity, message string)
}

type subscriber func(ctx context.Context, n Notification)

// Dispatcher is a concurrency-safe synchronous Notifier. Subscribers are
// invoked sequentially during Notify, in registration order.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers map[uint64]subscriber
	order       []uint64
	nextID      uint64
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subscribers: make(map[uint64]subscriber),
	}
}

// Subscribe registers a handler for all notifications. It returns an
// unsubscribe function that removes the handler when called.
func (d *Dispatcher) Subscribe(fn func(ctx context.Context, n Notification)) (unsubscribe func()) {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subscribers[id] = fn
	d.order = append(d.order, id)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.subscribers, id)
		for i, sid := range d.order {
			if sid == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Notify delivers the notification to all subscribers. Panics in subscribers
// are recovered and logged so one broken sink cannot take down the caller.
func (d *Dispatcher) Notify(ctx context.Context, severity Severity, message string) {
	n := Notification{
		Severity:  severity,
		Message:   message,
		Timestamp: time.Now(),
	}

	d.mu.RLock()
	handlers := make([]subscriber, 0, len(d.order))
	for _, id := range d.order {
		if fn, ok := d.subscribers[id]; ok {
			handlers = append(handlers, fn)
		}
	}
	d.mu.RUnlock()

	for _, fn := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("notification subscriber panic: %v", r)
				}
			}()
			fn(ctx, n)
		}()
	}
}

// LogSink is the default subscriber: it mirrors notifications into the
// application log.
func LogSink(_ context.Context, n Notification) {
	switch n.Severity {
	case SeverityError:
		log.Error(n.Message)
	case SeverityWarning:
		log.Warn(n.Message)
	default:
		log.Info(n.Message)
	}
}
