package events

import (
	"fmt"
	"log"
)

// Handler receives events.
type Handler func(Msg)

type subscription struct {
	id      int
	handler Handler
}

// Bus delivers events synchronously, in subscription order, on the caller's
// goroutine. It is not safe for concurrent use.
type Bus struct {
	subs   []subscription
	nextID int
	logger *log.Logger
}

// NewBus returns an empty bus. A non-nil logger receives one line per event.
func NewBus(logger *log.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers h and returns a func that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers msg to every current subscriber.
func (b *Bus) Emit(msg Msg) {
	if b == nil {
		return
	}
	if b.logger != nil {
		b.logger.Printf("%T %s", msg, msg.Describe())
	}
	subs := b.subs
	for _, s := range subs {
		s.handler(msg)
	}
}

// Recorder collects events in delivery order.
type Recorder struct {
	Msgs []Msg
}

// Handle implements Handler.
func (r *Recorder) Handle(msg Msg) {
	r.Msgs = append(r.Msgs, msg)
}

// Take returns the recorded events and resets the recorder.
func (r *Recorder) Take() []Msg {
	out := r.Msgs
	r.Msgs = nil
	return out
}

// Describe renders every recorded event, one per line, for test failures.
func (r *Recorder) Describe() string {
	out := ""
	for _, m := range r.Msgs {
		out += fmt.Sprintf("%T %s\n", m, m.Describe())
	}
	return out
}
