// Package layout resolves declarative element positions into style
// declarations.
//
// A position is either absolute, in pixels measured from the bottom-left
// corner of the containing box, or normalized: a fraction in [0,1] of the
// parent's box. Normalized positions render as truncated percentages and
// force the parent to become the positioning anchor.
package layout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/electripy/electripy/pkg/errors"
	"github.com/electripy/electripy/pkg/style"
)

// Mode tells how a Position's coordinates are interpreted.
type Mode int

const (
	// Absolute coordinates are pixels.
	Absolute Mode = iota
	// Relative coordinates are fractions of the parent's box.
	Relative
)

func (m Mode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Position is a declarative element position. The zero value is the
// absolute origin.
type Position struct {
	X, Y float64
	Mode Mode
}

// Px returns an absolute pixel position.
func Px(x, y int) Position {
	return Position{X: float64(x), Y: float64(y), Mode: Absolute}
}

// Frac returns a normalized position tagged relative to the parent.
func Frac(x, y float64) Position {
	return Position{X: x, Y: y, Mode: Relative}
}

// IsRelative reports whether p is a normalized position.
func (p Position) IsRelative() bool {
	return p.Mode == Relative
}

// Validate rejects normalized coordinates outside [0,1].
func (p Position) Validate() error {
	if p.Mode != Relative {
		return nil
	}
	if !inUnit(p.X) || !inUnit(p.Y) {
		return errors.Errorf("layout.Validate", errors.KindInvalidCoordinate, "",
			"%w: got %s", errors.ErrInvalidCoordinate, p)
	}
	return nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// String formats p as a tuple, e.g. "(100, 100)" or "(0.5, 0.5, relative)".
func (p Position) String() string {
	if p.Mode == Relative {
		return fmt.Sprintf("(%s, %s, relative)", formatNumber(p.X), formatNumber(p.Y))
	}
	return fmt.Sprintf("(%s, %s)", formatNumber(p.X), formatNumber(p.Y))
}

// Coords returns the pair as a slice, the shape handed to the frontend.
func (p Position) Coords() []float64 {
	return []float64{p.X, p.Y}
}

// Resolution is the outcome of resolving a Position.
type Resolution struct {
	Position string
	Left     string
	Bottom   string
	// AnchorParent is set when the parent must become "position: relative"
	// for percentage offsets to anchor on it.
	AnchorParent bool
}

// Decls returns the declarations in the order position, left, bottom.
func (r Resolution) Decls() []style.Decl {
	return []style.Decl{
		{Property: "position", Value: r.Position},
		{Property: "left", Value: r.Left},
		{Property: "bottom", Value: r.Bottom},
	}
}

// ParentDecl is the declaration applied to the parent when AnchorParent is set.
var ParentDecl = style.Decl{Property: "position", Value: "relative"}

// Resolve converts p into style values. It is a pure function of p; the
// caller applies ParentDecl to the parent when AnchorParent is set.
func Resolve(p Position) (Resolution, error) {
	if err := p.Validate(); err != nil {
		return Resolution{}, err
	}
	if p.Mode == Relative {
		return Resolution{
			Position:     "absolute",
			Left:         strconv.Itoa(Percent(p.X)) + "%",
			Bottom:       strconv.Itoa(Percent(p.Y)) + "%",
			AnchorParent: true,
		}, nil
	}
	return Resolution{
		Position: "absolute",
		Left:     formatNumber(p.X) + "px",
		Bottom:   formatNumber(p.Y) + "px",
	}, nil
}

// Percent converts a fraction to an integer percentage, truncating toward
// zero: Percent(0.299) == 29.
func Percent(f float64) int {
	return int(f * 100)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
