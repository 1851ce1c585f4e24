package rotation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoforge/wavedeck/internal/domain"
)

const tol = 1e-9

func TestColatitudeConversion(t *testing.T) {
	assert.Equal(t, 90.0, LatToColat(0.0))
	assert.Equal(t, 0.0, LatToColat(90.0))
	assert.Equal(t, 180.0, LatToColat(-90.0))
	assert.Equal(t, 42.25, LatToColat(47.75))

	for _, lat := range []float64{-90, -45.5, 0, 13.37, 90} {
		assert.InDelta(t, lat, ColatToLat(LatToColat(lat)), tol)
	}
}

func TestRotateVector(t *testing.T) {
	zAxis := Vector{0, 0, 1}

	t.Run("quarter turn around z moves x to y", func(t *testing.T) {
		got := RotateVector(Vector{1, 0, 0}, zAxis, 90.0)
		assert.InDelta(t, 0.0, got[0], tol)
		assert.InDelta(t, 1.0, got[1], tol)
		assert.InDelta(t, 0.0, got[2], tol)
	})

	t.Run("axis is normalized", func(t *testing.T) {
		a := RotateVector(Vector{1, 2, 3}, Vector{0, 0, 10}, 33.0)
		b := RotateVector(Vector{1, 2, 3}, zAxis, 33.0)
		for i := range a {
			assert.InDelta(t, b[i], a[i], tol)
		}
	})

	t.Run("full turn is the identity", func(t *testing.T) {
		v := Vector{0.3, -0.4, 0.5}
		got := RotateVector(v, Vector{1, 1, 0}, 360.0)
		for i := range v {
			assert.InDelta(t, v[i], got[i], tol)
		}
	})
}

func TestRotateLatLon(t *testing.T) {
	t.Run("rotation around z shifts longitude only", func(t *testing.T) {
		lat, lon := RotateLatLon(12.34, 45.0, Vector{0, 0, 1}, 30.0)
		assert.InDelta(t, 12.34, lat, tol)
		assert.InDelta(t, 75.0, lon, tol)
	})

	t.Run("zero angle keeps the point", func(t *testing.T) {
		lat, lon := RotateLatLon(-33.0, 151.2, Vector{1, 0, 0}, 0.0)
		assert.InDelta(t, -33.0, lat, tol)
		assert.InDelta(t, 151.2, lon, tol)
	})

	t.Run("forward then backward round trips", func(t *testing.T) {
		axis := Vector{0.3, 0.5, 0.8}
		lat1, lon1 := RotateLatLon(38.7, -9.1, axis, 57.5)
		lat0, lon0 := RotateLatLon(lat1, lon1, axis, -57.5)
		assert.InDelta(t, 38.7, lat0, tol)
		assert.InDelta(t, -9.1, lon0, tol)
	})
}

func TestRotateMomentTensor(t *testing.T) {
	t.Run("zero angle is the identity", func(t *testing.T) {
		mt := domain.MomentTensor{Mrr: 1e16, Mtt: -2e16, Mpp: 3e15, Mrt: 1e15, Mrp: -5e14, Mtp: 2e14}
		got := RotateMomentTensor(mt, 12.0, 34.0, Vector{0, 0, 1}, 0.0)
		assertTensorInDelta(t, mt, got, 1e4)
	})

	t.Run("radial component survives any rotation", func(t *testing.T) {
		// An isotropic-free, purely radial source looks the same from every
		// rotated frame.
		mt := domain.MomentTensor{Mrr: 1e16}
		got := RotateMomentTensor(mt, 40.0, 15.0, Vector{0.2, 0.9, 0.1}, 78.0)
		assertTensorInDelta(t, mt, got, 1e4)
	})

	t.Run("rotation preserves the scalar moment", func(t *testing.T) {
		mt := domain.MomentTensor{Mrr: 1e16, Mtt: 2e16, Mpp: -1e16, Mrt: 3e15, Mrp: 1e15, Mtp: -2e15}
		got := RotateMomentTensor(mt, -21.0, 67.0, Vector{0, 1, 0}, 33.0)
		assert.InDelta(t, frobenius(mt), frobenius(got), 1e4)
	})

	t.Run("round trip restores the tensor", func(t *testing.T) {
		mt := domain.MomentTensor{Mrr: 4e15, Mtt: -1e16, Mpp: 6e15, Mrt: -2e15, Mrp: 8e14, Mtp: 3e15}
		axis := Vector{0, 1, 0}
		lat1, lon1 := RotateLatLon(10.0, 20.0, axis, 45.0)
		fwd := RotateMomentTensor(mt, 10.0, 20.0, axis, 45.0)
		back := RotateMomentTensor(fwd, lat1, lon1, axis, -45.0)
		assertTensorInDelta(t, mt, back, 1e4)
	})
}

func assertTensorInDelta(t *testing.T, want, got domain.MomentTensor, delta float64) {
	t.Helper()
	assert.InDelta(t, want.Mrr, got.Mrr, delta)
	assert.InDelta(t, want.Mtt, got.Mtt, delta)
	assert.InDelta(t, want.Mpp, got.Mpp, delta)
	assert.InDelta(t, want.Mrt, got.Mrt, delta)
	assert.InDelta(t, want.Mrp, got.Mrp, delta)
	assert.InDelta(t, want.Mtp, got.Mtp, delta)
}

// frobenius is the norm of the full symmetric 3x3 tensor.
func frobenius(m domain.MomentTensor) float64 {
	return math.Sqrt(m.Mrr*m.Mrr + m.Mtt*m.Mtt + m.Mpp*m.Mpp +
		2*(m.Mrt*m.Mrt+m.Mrp*m.Mrp+m.Mtp*m.Mtp))
}
