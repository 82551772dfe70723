/*mat contains the small amount of dense matrix machinery that a coil
model needs. Pretty much everything only works on 3x3 matrices because
that's all an orientation in space requires.
*/
package mat

import (
	"math"
)

// Matrix represents a matrix of float64 values.
type Matrix struct {
	Vals          []float64
	Width, Height int
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width*height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// Identity returns the 3x3 identity matrix.
func Identity() *Matrix {
	return NewMatrix([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, 3, 3)
}

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	}

	for i := range out.Vals {
		out.Vals[i] = 0
	}
	for i := 0; i < m1.Height; i++ {
		off := i * m1.Width
		for j := 0; j < m2.Width; j++ {
			outIdx := i*m2.Width + j
			for k := 0; k < m1.Width; k++ {
				out.Vals[outIdx] += m1.Vals[off+k] * m2.Vals[k*m2.Width+j]
			}
		}
	}

	return out
}

// Transpose returns the transpose of a matrix.
func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(make([]float64, len(m.Vals)), m.Height, m.Width)
	for i := 0; i < m.Height; i++ {
		for j := 0; j < m.Width; j++ {
			out.Vals[j*m.Height+i] = m.Vals[i*m.Width+j]
		}
	}
	return out
}

// Determinant computes the determinant of a 3x3 matrix.
func (m *Matrix) Determinant() float64 {
	if m.Width != 3 || m.Height != 3 {
		panic("Determinant only works on 3x3 matrices.")
	}

	v := m.Vals
	return v[0]*(v[4]*v[8]-v[5]*v[7]) -
		v[1]*(v[3]*v[8]-v[5]*v[6]) +
		v[2]*(v[3]*v[7]-v[4]*v[6])
}

// IsRotation returns true if m is a proper rotation matrix, i.e. if it is
// orthonormal with determinant +1 to within eps.
func (m *Matrix) IsRotation(eps float64) bool {
	if m.Width != 3 || m.Height != 3 {
		return false
	}

	prod := m.Mult(m.Transpose())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(prod.Vals[i*3+j]-want) > eps {
				return false
			}
		}
	}

	return math.Abs(m.Determinant()-1) <= eps
}
