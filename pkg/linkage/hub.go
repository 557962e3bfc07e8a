package linkage

import (
	"fmt"

	"github.com/chazu/linkfab/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// HubID identifies a hub within one configuration. IDs start at 1.
type HubID int

// Letter returns the display label for the id: 1 is "A", 2 is "B" and so
// on. IDs above 26 continue past 'Z' through the following code points.
func (id HubID) Letter() string {
	return string(rune('@' + int(id)))
}

// Hub is a pivot point shared by one or more links.
type Hub struct {
	ID       HubID
	Position r2.Vec
}

// Equal reports whether two hubs sit at the same position within the
// geometry tolerance. IDs are not compared.
func (h *Hub) Equal(o *Hub) bool {
	return geom.PointsEqual(h.Position, o.Position)
}

// Label returns the hub's letter.
func (h *Hub) Label() string {
	return h.ID.Letter()
}

func (h *Hub) String() string {
	return fmt.Sprintf("%s(%g, %g)", h.Label(), h.Position.X, h.Position.Y)
}

// IDAllocator hands out hub ids in increasing order. The zero value
// is not ready for use; call NewIDAllocator.
type IDAllocator struct {
	next HubID
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() HubID {
	id := a.next
	a.next++
	return id
}
