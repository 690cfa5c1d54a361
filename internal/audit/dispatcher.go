package audit

import (
	"context"
	"log"
	"sync"
	"time"
)

type Writer interface {
	Write(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	writer Writer
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(writer Writer) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.writer.Write(ctx, ev); err != nil {
			log.Println("audit error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	// requisição que terminou depois do Close: só registra no log
	if d.closed {
		log.Printf("audit closed, dropping event %s %s/%s", ev.Action, ev.Entity, ev.EntityID)
		return
	}

	select {
	case d.queue <- ev:
	default:
		// fila cheia: descarta, a auditoria nunca trava a requisição
		log.Println("audit queue full, dropping event")
	}
}

// Close esvazia a fila e espera o worker. Eventos despachados depois
// disso são descartados.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
