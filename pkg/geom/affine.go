package geom

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNotHomogeneous is returned when a matrix expected in 4x4
// homogeneous form has any other shape.
var ErrNotHomogeneous = errors.New("expected transform format: 4x4 matrix")

// Affine is the compact 12-parameter form of a 3D affine transform:
//
//	x' = a*x + b*y + c*z + xoff
//	y' = d*x + e*y + f*z + yoff
//	z' = g*x + h*y + i*z + zoff
//
// stored as [a b c d e f g h i xoff yoff zoff]. It is the form the
// kernels apply to geometry; Matrix converts it to the dense 4x4
// homogeneous form used for composition and storage.
type Affine [12]float64

// IdentityAffine is the transform that leaves geometry unchanged.
var IdentityAffine = Affine{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}

// Matrix returns the 4x4 homogeneous matrix of a.
func (a Affine) Matrix() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		a[0], a[1], a[2], a[9],
		a[3], a[4], a[5], a[10],
		a[6], a[7], a[8], a[11],
		0, 0, 0, 1,
	})
}

// AffineFromMatrix converts a 4x4 homogeneous matrix to its compact
// form. The bottom row is assumed to be (0 0 0 1) and is not checked.
func AffineFromMatrix(m mat.Matrix) (Affine, error) {
	if err := CheckHomogeneous(m); err != nil {
		return Affine{}, err
	}
	return Affine{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2),
		m.At(0, 3), m.At(1, 3), m.At(2, 3),
	}, nil
}

// MustAffine is AffineFromMatrix for matrices known to be 4x4.
func MustAffine(m mat.Matrix) Affine {
	a, err := AffineFromMatrix(m)
	if err != nil {
		panic(err)
	}
	return a
}

// CheckHomogeneous returns ErrNotHomogeneous (wrapped with the actual
// dimensions) unless m is a 4x4 matrix.
func CheckHomogeneous(m mat.Matrix) error {
	if m == nil {
		return fmt.Errorf("%w, got nil", ErrNotHomogeneous)
	}
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return fmt.Errorf("%w, got %dx%d", ErrNotHomogeneous, r, c)
	}
	return nil
}

// Params2D returns the planar 6-parameter form [a b d e xoff yoff].
func (a Affine) Params2D() [6]float64 {
	return [6]float64{a[0], a[1], a[3], a[4], a[9], a[10]}
}

// AffineFrom2D expands the planar 6-parameter form [a b d e xoff yoff]
// into a 3D transform that leaves z unchanged.
func AffineFrom2D(p [6]float64) Affine {
	return Affine{p[0], p[1], 0, p[2], p[3], 0, 0, 0, 1, p[4], p[5], 0}
}

// Apply transforms a planar point (z = 0).
func (a Affine) Apply(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: a[0]*p.X + a[1]*p.Y + a[9],
		Y: a[3]*p.X + a[4]*p.Y + a[10],
	}
}

// ApplyAll transforms every point of ps into a new slice.
func (a Affine) ApplyAll(ps []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(ps))
	for i, p := range ps {
		out[i] = a.Apply(p)
	}
	return out
}

// Identity returns a new 4x4 identity matrix.
func Identity() *mat.Dense {
	return IdentityAffine.Matrix()
}

// Compose multiplies the matrices left to right. Applying the result
// to a point is the same as applying the rightmost matrix first and the
// leftmost last. With no arguments the identity is returned.
func Compose(ms ...mat.Matrix) *mat.Dense {
	out := Identity()
	for _, m := range ms {
		var next mat.Dense
		next.Mul(out, m)
		out = &next
	}
	return out
}

// Translation returns the pure translation by (x, y, z).
func Translation(x, y, z float64) Affine {
	return Affine{1, 0, 0, 0, 1, 0, 0, 0, 1, x, y, z}
}
