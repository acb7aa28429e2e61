// seehuhn.de/go/sigpad - capture handwritten signatures as strokes and images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sigpad

import (
	"bytes"
	"context"
	"image"
	"sync"

	"seehuhn.de/go/geom/vec"
)

// Loop owns a Pad and applies all events to it on a single goroutine, in
// the order they were sent.  Image requests take their snapshot on that
// goroutine, so that they see every event sent before them, and render on a
// goroutine of their own.
type Loop struct {
	pad    *Pad
	events chan loopEvent
	done   chan struct{}

	mu     sync.Mutex // serialises senders against shutdown
	closed bool
}

type loopEvent struct {
	apply func()
	abort func(error) // may be nil
}

// ImageResult is the outcome of a Loop.Image request.
type ImageResult struct {
	Image *image.NRGBA
	Data  []byte // Image, encoded in the requested format
	Err   error
}

// NewLoop returns a Loop for p which can hold up to queue pending events.
// Call Run to start processing.
func NewLoop(p *Pad, queue int) *Loop {
	return &Loop{
		pad:    p,
		events: make(chan loopEvent, queue),
		done:   make(chan struct{}),
	}
}

// Pad returns the Pad owned by l.
func (l *Loop) Pad() *Pad {
	return l.pad
}

// Run processes events until ctx is cancelled, and returns ctx.Err().
// Events which are still queued at that point are dropped; pending image
// requests fail with ErrClosed.  Run must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			ev.apply()
		}
	}
}

func (l *Loop) shutdown() {
	close(l.done)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	for {
		select {
		case ev := <-l.events:
			if ev.abort != nil {
				ev.abort(ErrClosed)
			}
		default:
			return
		}
	}
}

// send queues ev, blocking while the queue is full.
func (l *Loop) send(ctx context.Context, ev loopEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	select {
	case l.events <- ev:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Press queues a pointer press at pt.
func (l *Loop) Press(ctx context.Context, pt vec.Vec2) error {
	return l.send(ctx, loopEvent{apply: func() { l.pad.Press(pt) }})
}

// Move queues a pointer move to pt.
func (l *Loop) Move(ctx context.Context, pt vec.Vec2) error {
	return l.send(ctx, loopEvent{apply: func() { l.pad.Move(pt) }})
}

// Release queues a pointer release at pt.
func (l *Loop) Release(ctx context.Context, pt vec.Vec2) error {
	return l.send(ctx, loopEvent{apply: func() { l.pad.Release(pt) }})
}

// Clear queues a request to remove all strokes.
func (l *Loop) Clear(ctx context.Context) error {
	return l.send(ctx, loopEvent{apply: l.pad.Clear})
}

// LoadPoints queues a request to replace all strokes by the ones in pts.
// The points are copied.
func (l *Loop) LoadPoints(ctx context.Context, pts []vec.Vec2) error {
	pts = append([]vec.Vec2(nil), pts...)
	return l.send(ctx, loopEvent{apply: func() { l.pad.LoadPoints(pts) }})
}

// Image requests an export of the signature.  The result is delivered on
// the returned channel exactly once.
func (l *Loop) Image(ctx context.Context, opts ImageOptions) <-chan ImageResult {
	res := make(chan ImageResult, 1)
	ev := loopEvent{
		apply: func() {
			l.pad.mu.RLock()
			snap := l.pad.snapshot()
			l.pad.mu.RUnlock()
			go func() {
				res <- encodeSnapshot(snap, opts)
			}()
		},
		abort: func(err error) {
			res <- ImageResult{Err: err}
		},
	}
	if err := l.send(ctx, ev); err != nil {
		res <- ImageResult{Err: err}
	}
	return res
}

func encodeSnapshot(snap snapshot, opts ImageOptions) ImageResult {
	img, err := snap.image(opts)
	if err != nil {
		return ImageResult{Err: err}
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, img, opts.Format); err != nil {
		return ImageResult{Err: err}
	}
	return ImageResult{Image: img, Data: buf.Bytes()}
}
