// seehuhn.de/go/drawtools - drawing tools for interactive price charts
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

// Package registry keeps the ordered collection of drawings on a chart
// and renders them into the chart's drawings layer.
//
// Renders are coalesced: any number of [Registry.RequestRender] calls
// between two frames result in a single pass over all drawings.  A
// drawing which fails to render is logged and skipped; the other
// drawings are still rendered.
package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/drawtools/scene"
	"seehuhn.de/go/drawtools/tools"
	"seehuhn.de/go/drawtools/viewport"
)

var (
	// ErrDuplicateID is returned when adding a drawing whose id is
	// already in use.
	ErrDuplicateID = errors.New("registry: duplicate drawing id")

	// ErrRenderPanic wraps a panic raised while rendering a drawing.
	ErrRenderPanic = errors.New("registry: panic during render")

	// ErrUnknownID is returned when editing a drawing which is not in
	// the registry.
	ErrUnknownID = errors.New("registry: unknown drawing id")

	// ErrNotInvertible indicates a pixel position which cannot be mapped
	// back to chart coordinates.
	ErrNotInvertible = errors.New("registry: pixel position not invertible")
)

// Registry is an ordered collection of drawings.  Later drawings are
// painted on top of earlier ones.
//
// A Registry is safe for concurrent use.  The layer must only be
// accessed through the registry while other goroutines use it.
type Registry struct {
	mu    sync.Mutex
	tools []tools.Tool
	layer *scene.Layer
	log   *logrus.Entry

	pending atomic.Bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the log entry used by the registry.
func WithLogger(e *logrus.Entry) Option {
	return func(r *Registry) {
		r.log = e
	}
}

// WithLayer makes the registry render into an existing layer, for
// example one which also holds the candles of the chart.
func WithLayer(l *scene.Layer) Option {
	return func(r *Registry) {
		r.layer = l
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.layer == nil {
		r.layer = scene.NewLayer()
	}
	if r.log == nil {
		r.log = logrus.StandardLogger().WithField("component", "registry")
	}
	return r
}

// Layer returns the drawings layer.
func (r *Registry) Layer() *scene.Layer {
	return r.layer
}

// Add appends a drawing on top of all others and schedules a render.
func (r *Registry) Add(t tools.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := t.Common().ID
	if r.indexLocked(id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	r.tools = append(r.tools, t)
	r.pending.Store(true)
	return nil
}

// Remove deletes a drawing together with its rendered subtree.  The
// result is false if there is no drawing with this id.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return false
	}
	r.tools = slices.Delete(r.tools, i, i+1)
	r.layer.Remove(id)
	return true
}

// Get returns the drawing with the given id.
func (r *Registry) Get(id string) (tools.Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	if i < 0 {
		return nil, false
	}
	return r.tools[i], true
}

// Clear removes all drawings and their rendered subtrees.  Nodes in the
// layer which do not belong to a drawing are kept.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = nil
	r.layer.ClearOwned()
}

// Len returns the number of drawings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tools)
}

// Tools returns the drawings in paint order.
func (r *Registry) Tools() []tools.Tool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tools)
}

// MoveUp moves a drawing one step towards the top.  The result is false
// if the drawing does not exist or is already on top.
func (r *Registry) MoveUp(id string) bool {
	return r.swap(id, +1)
}

// MoveDown moves a drawing one step towards the bottom.
func (r *Registry) MoveDown(id string) bool {
	return r.swap(id, -1)
}

func (r *Registry) swap(id string, dir int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexLocked(id)
	j := i + dir
	if i < 0 || j < 0 || j >= len(r.tools) {
		return false
	}
	r.tools[i], r.tools[j] = r.tools[j], r.tools[i]

	ids := make([]string, len(r.tools))
	for k, t := range r.tools {
		ids[k] = t.Common().ID
	}
	r.layer.Reorder(ids)
	return true
}

func (r *Registry) indexLocked(id string) int {
	return slices.IndexFunc(r.tools, func(t tools.Tool) bool {
		return t.Common().ID == id
	})
}

// Result summarises a render pass.
type Result struct {
	Rendered int // drawings with a rendered subtree
	Skipped  int // hidden or incomplete drawings
	Failed   int
	Errors   []error
}

// RenderAll renders every drawing for the given viewport.
func (r *Registry) RenderAll(vp *viewport.Viewport) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	var res Result
	for _, t := range r.tools {
		g, err := r.renderOne(t, vp)
		switch {
		case err != nil:
			res.Failed++
			res.Errors = append(res.Errors, err)
			r.log.WithFields(logrus.Fields{
				"drawing_id": t.Common().ID,
				"type":       t.Kind(),
			}).WithError(err).Warn("render failed")
		case g == nil:
			res.Skipped++
		default:
			res.Rendered++
		}
	}

	r.log.WithFields(logrus.Fields{
		"rendered":    res.Rendered,
		"skipped":     res.Skipped,
		"failed":      res.Failed,
		"duration_ms": float64(time.Since(start).Nanoseconds()) / 1e6,
	}).Debug("render pass")
	return res
}

func (r *Registry) renderOne(t tools.Tool, vp *viewport.Viewport) (g *scene.Group, err error) {
	defer func() {
		if p := recover(); p != nil {
			g = nil
			err = fmt.Errorf("%w: %v", ErrRenderPanic, p)
		}
	}()
	return t.Render(r.layer, vp)
}

// RequestRender marks the registry as needing a render.  It never
// blocks.
func (r *Registry) RequestRender() {
	r.pending.Store(true)
}

// Pending reports whether a render has been requested since the last
// flush.
func (r *Registry) Pending() bool {
	return r.pending.Load()
}

// Flush renders all drawings if a render was requested.  The second
// result reports whether a render took place.
func (r *Registry) Flush(vp *viewport.Viewport) (Result, bool) {
	if !r.pending.Swap(false) {
		return Result{}, false
	}
	return r.RenderAll(vp), true
}

// Run flushes pending renders once per interval until ctx is done.
// The viewport is fetched from the host only when a render is due.
func (r *Registry) Run(ctx context.Context, interval time.Duration, current func() (*viewport.Viewport, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !r.Pending() {
				continue
			}
			vp, err := current()
			if err != nil {
				r.log.WithError(err).Warn("no viewport, render postponed")
				continue
			}
			r.Flush(vp)
		}
	}
}

// DragPoint moves anchor point i of the drawing to the chart position
// under pixel p and requests a render.  Locked drawings return
// [tools.ErrLocked].
func (r *Registry) DragPoint(id string, i int, p vec.Vec2, vp *viewport.Viewport) error {
	x, price, ok := vp.FromPixel(p)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotInvertible, p)
	}
	return r.edit(id, func(b *tools.Base) error {
		return b.MovePoint(i, tools.Point{X: x, Y: price})
	})
}

// Drag moves the whole drawing by the chart distance between the pixel
// positions from and to, and requests a render.
func (r *Registry) Drag(id string, from, to vec.Vec2, vp *viewport.Viewport) error {
	x0, p0, ok0 := vp.FromPixel(from)
	x1, p1, ok1 := vp.FromPixel(to)
	if !ok0 || !ok1 {
		return fmt.Errorf("%w: %v -> %v", ErrNotInvertible, from, to)
	}
	return r.edit(id, func(b *tools.Base) error {
		return b.Translate(x1-x0, p1-p0)
	})
}

func (r *Registry) edit(id string, fn func(b *tools.Base) error) error {
	r.mu.Lock()
	i := r.indexLocked(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownID, id)
	}
	err := fn(r.tools[i].Common())
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.RequestRender()
	return nil
}

// HitTest returns the id of the topmost drawing at pixel p.  If p is on
// a drag handle, handle is the index of the anchor point, otherwise -1.
func (r *Registry) HitTest(p vec.Vec2, tolerance float64) (id string, handle int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range slices.Backward(r.tools) {
		id := t.Common().ID
		g, _ := r.layer.Find(id)
		if g == nil {
			continue
		}
		if hit, h := tools.HitTest(g, p, tolerance); hit {
			return id, h, true
		}
	}
	return "", -1, false
}
