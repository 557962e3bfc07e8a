package linkage

import (
	"errors"
	"fmt"

	"github.com/chazu/linkfab/pkg/geom"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidTransform is returned when a fabrication transform is not a
// 4x4 homogeneous matrix.
var ErrInvalidTransform = errors.New("invalid fabrication transform")

// Link is a rigid body joining exactly two hubs.
type Link struct {
	HubA *Hub
	HubB *Hub

	// fabrication places the primitive pose on the sheet. nil means
	// identity.
	fabrication *mat.Dense
}

// NewLink returns a link between a and b with an identity fabrication
// transform.
func NewLink(a, b *Hub) *Link {
	return &Link{HubA: a, HubB: b}
}

// ID returns the link label "A|B" built from the two hub letters.
func (l *Link) ID() string {
	return l.HubA.Label() + "|" + l.HubB.Label()
}

// Segment returns the link's center line in assembled space.
func (l *Link) Segment() geom.Segment {
	return geom.Segment{A: l.HubA.Position, B: l.HubB.Position}
}

// Length returns the hub-to-hub distance.
func (l *Link) Length() float64 {
	return r2.Norm(r2.Sub(l.HubB.Position, l.HubA.Position))
}

// SetFabricationTransform stores a copy of m as the link's fabrication
// transform. m must be 4x4.
func (l *Link) SetFabricationTransform(m mat.Matrix) error {
	if err := geom.CheckHomogeneous(m); err != nil {
		return fmt.Errorf("%w for link %s: %w", ErrInvalidTransform, l.ID(), err)
	}
	l.fabrication = mat.DenseCopyOf(m)
	return nil
}

// FabricationTransform returns a copy of the fabrication transform.
func (l *Link) FabricationTransform() *mat.Dense {
	if l.fabrication == nil {
		return geom.Identity()
	}
	return mat.DenseCopyOf(l.fabrication)
}

func (l *Link) String() string {
	return fmt.Sprintf("%s [%s -> %s]", l.ID(), l.HubA, l.HubB)
}
