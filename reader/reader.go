package reader

import (
	"context"
	"log"
	"time"
)

// Source delivers card tokens from whatever presents them. The kiosk
// treats the reader as a keyboard-wedge style stream; hardware specifics
// stay behind this boundary.
type Source interface {
	Tokens() <-chan int64
}

// ChannelSource adapts a plain channel into a Source. The desktop shell
// and the tests both feed taps through one of these.
type ChannelSource struct {
	C chan int64
}

func NewChannelSource() *ChannelSource {
	return &ChannelSource{C: make(chan int64)}
}

func (s *ChannelSource) Tokens() <-chan int64 {
	return s.C
}

// Dispatcher pumps tokens from a Source into the tap handler. Handler
// errors are logged, never fatal: a kiosk that stops listening is worse
// than one that drops a tap.
type Dispatcher struct {
	src    Source
	handle func(token int64, at time.Time) error
}

func NewDispatcher(src Source, handle func(token int64, at time.Time) error) *Dispatcher {
	return &Dispatcher{src: src, handle: handle}
}

// Run blocks until the context is cancelled or the source closes.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case token, ok := <-d.src.Tokens():
			if !ok {
				return
			}
			if err := d.handle(token, time.Now()); err != nil {
				log.Printf("tap %d not recorded: %v", token, err)
			}
		}
	}
}
