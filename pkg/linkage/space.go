package linkage

import (
	"fmt"
	"strings"
)

// Space selects the coordinate frame a link is viewed in.
type Space int

const (
	Assembled   Space = iota // as authored, links interconnected
	Primitive                // canonical pose: centered, long axis vertical
	Fabrication              // primitive pose placed on the sheet
)

// Spaces lists every space in declaration order.
var Spaces = []Space{Assembled, Primitive, Fabrication}

func (s Space) String() string {
	switch s {
	case Assembled:
		return "assembled"
	case Primitive:
		return "primitive"
	case Fabrication:
		return "fabrication"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

// ParseSpace converts a space name to a Space. Matching ignores case.
func ParseSpace(name string) (Space, error) {
	for _, s := range Spaces {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown space %q", name)
}
