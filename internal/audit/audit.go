// Package audit is the best-effort sink for the user action trail. A failed
// or dropped write never reaches the handler that triggered it; it is only
// reported to the operational log.
package audit

import (
	"log/slog"
	"time"

	"github.com/Pho3nix-24/CENTRO-web/internal/models"
)

// Writer persists one audit entry. *store.Store satisfies it.
type Writer interface {
	AppendAudit(entry models.AuditLog) error
}

// Event is one user action worth recording.
type Event struct {
	Actor         string
	Action        string
	OriginIP      string
	AffectedTable string
	AffectedRowID *uint
	Detail        string
}

// Dispatcher queues events and writes them from a background worker, so the
// triggering request never waits on the audit insert.
type Dispatcher struct {
	writer Writer
	queue  chan Event
	now    func() time.Time
	done   chan struct{}
}

func NewDispatcher(writer Writer) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		queue:  make(chan Event, 100),
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		entry := models.AuditLog{
			Timestamp:     d.now(),
			Actor:         ev.Actor,
			Action:        ev.Action,
			AffectedTable: ev.AffectedTable,
			AffectedRowID: ev.AffectedRowID,
			Detail:        ev.Detail,
			OriginIP:      ev.OriginIP,
		}
		if err := d.writer.AppendAudit(entry); err != nil {
			slog.Error("no se pudo registrar la auditoría",
				"error", err, "accion", ev.Action, "actor", ev.Actor)
		}
	}
}

// Dispatch enqueues an event without blocking. When the queue is full the
// event is dropped and logged; the business operation continues regardless.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		slog.Warn("cola de auditoría llena, evento descartado", "accion", ev.Action)
	}
}

// Close drains the queue and stops the worker. Used on shutdown and in
// tests.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
