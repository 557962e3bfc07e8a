package linkage

import (
	"github.com/chazu/linkfab/pkg/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// Configuration is a whole mechanism: the unique hubs in creation order
// and the links in render order.
type Configuration struct {
	Hubs  []*Hub
	Links []*Link
}

// BuildFromSegments builds a configuration with a fresh id allocator.
func BuildFromSegments(segments []geom.Segment) *Configuration {
	return BuildFromSegmentsWith(NewIDAllocator(), segments)
}

// BuildFromSegmentsWith turns raw segments into hubs and links. Each
// endpoint resolves to an existing hub at the same position (within
// tolerance) or becomes a new hub with an id from alloc. Degenerate
// segments are kept as zero-length links.
func BuildFromSegmentsWith(alloc *IDAllocator, segments []geom.Segment) *Configuration {
	cfg := &Configuration{}
	for _, s := range segments {
		a := cfg.hubAt(alloc, s.A)
		b := cfg.hubAt(alloc, s.B)
		cfg.Links = append(cfg.Links, NewLink(a, b))
	}
	return cfg
}

// hubAt returns the hub at p, creating it if none matches.
func (c *Configuration) hubAt(alloc *IDAllocator, p r2.Vec) *Hub {
	if h := c.FindHub(p); h != nil {
		return h
	}
	h := &Hub{ID: alloc.Next(), Position: p}
	c.Hubs = append(c.Hubs, h)
	return h
}

// FindHub returns the first hub at p within tolerance, or nil.
func (c *Configuration) FindHub(p r2.Vec) *Hub {
	for _, h := range c.Hubs {
		if geom.PointsEqual(h.Position, p) {
			return h
		}
	}
	return nil
}

// IsEmpty reports whether the configuration has no links.
func (c *Configuration) IsEmpty() bool {
	return len(c.Links) == 0
}

// LinksAt returns the links attached to h, in link order.
func (c *Configuration) LinksAt(h *Hub) []*Link {
	var out []*Link
	for _, l := range c.Links {
		if l.HubA == h || l.HubB == h {
			out = append(out, l)
		}
	}
	return out
}
