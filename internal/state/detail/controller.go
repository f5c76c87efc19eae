// Package detail tracks the single artwork opened for close viewing.
package detail

import (
	"sync"

	"artist-portfolio/internal/domain/works"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Controller never fetches; callers hand it an artwork they already hold.
type Controller struct {
	mu       sync.Mutex
	selected *works.Artwork
}

func New() *Controller { return &Controller{} }

// Select opens a, replacing any open selection.
func (c *Controller) Select(a works.Artwork) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &a
}

func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

func (c *Controller) Selected() (works.Artwork, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return works.Artwork{}, false
	}
	return *c.selected, true
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return Closed
	}
	return Open
}
