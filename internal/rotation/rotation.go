// Package rotation provides pure functions to rotate geographic coordinates
// and moment tensors on a spherical body.
//
// The coordinate system is right handed with the origin at the center of the
// sphere: the z-axis points at the north pole, the x-axis at latitude 0 /
// longitude 0, and the y-axis at latitude 0 / longitude 90. Rotation axes are
// [x, y, z] vectors in that system, angles are degrees, and a positive angle
// follows the right-hand rule around the axis: a positive angle around the
// z-axis shifts points towards larger longitudes.
//
// Nothing in this package mutates its inputs; renderers compute rotated
// copies for the duration of a render call only.
package rotation

import (
	"math"

	"github.com/geoforge/wavedeck/internal/domain"
)

// Vector is an [x, y, z] triple.
type Vector [3]float64

type matrix [3][3]float64

// LatToColat converts latitude to colatitude (the angle from the z-axis).
func LatToColat(lat float64) float64 { return 90.0 - lat }

// ColatToLat converts colatitude back to latitude.
func ColatToLat(colat float64) float64 { return -(colat - 90.0) }

// RotateVector rotates v around axis by angleDeg degrees.
func RotateVector(v, axis Vector, angleDeg float64) Vector {
	return rotationMatrix(axis, angleDeg).mulVec(v)
}

// RotateLatLon returns the latitude/longitude a point ends up at after the
// sphere is rotated around axis by angleDeg degrees.
func RotateLatLon(lat, lon float64, axis Vector, angleDeg float64) (float64, float64) {
	xyz := latLonToXYZ(lat, lon, 1.0)
	newLat, newLon, _ := xyzToLatLonRadius(RotateVector(xyz, axis, angleDeg))
	return newLat, newLon
}

// RotateMomentTensor rotates a moment tensor located at lat/lon around axis
// by angleDeg degrees, performing the base change from the spherical unit
// vectors at the original point to those at the rotated point. The radial
// component of a purely radial tensor is preserved.
func RotateMomentTensor(mt domain.MomentTensor, lat, lon float64, axis Vector, angleDeg float64) domain.MomentTensor {
	transfer := baseTransferMatrix(lat, lon, axis, angleDeg)

	// Second-order tensor in the (theta, phi, r) basis.
	t := matrix{
		{mt.Mtt, mt.Mtp, mt.Mrt},
		{mt.Mtp, mt.Mpp, mt.Mrp},
		{mt.Mrt, mt.Mrp, mt.Mrr},
	}
	rotated := transfer.mul(t).mul(transfer.transpose())

	return domain.MomentTensor{
		Mrr: rotated[2][2],
		Mtt: rotated[0][0],
		Mpp: rotated[1][1],
		Mrt: rotated[0][2],
		Mrp: rotated[1][2],
		Mtp: rotated[0][1],
	}
}

// sphericalUnitVectors returns e_theta, e_phi, e_r at the given point.
func sphericalUnitVectors(lat, lon float64) (Vector, Vector, Vector) {
	colat := deg2rad(LatToColat(lat))
	lonR := deg2rad(lon)

	eTheta := Vector{
		math.Cos(lonR) * math.Cos(colat),
		math.Sin(lonR) * math.Cos(colat),
		-math.Sin(colat),
	}
	ePhi := Vector{-math.Sin(lonR), math.Cos(lonR), 0.0}
	eR := Vector{
		math.Cos(lonR) * math.Sin(colat),
		math.Sin(lonR) * math.Sin(colat),
		math.Cos(colat),
	}
	return eTheta, ePhi, eR
}

// baseTransferMatrix combines the rotation with the change of spherical basis
// between the original and the rotated point. Both bases are orthonormal, so
// the transfer matrix is built from pairwise dot products.
func baseTransferMatrix(lat, lon float64, axis Vector, angleDeg float64) matrix {
	newLat, newLon := RotateLatLon(lat, lon, axis, angleDeg)

	eTheta, ePhi, eR := sphericalUnitVectors(lat, lon)
	eThetaNew, ePhiNew, eRNew := sphericalUnitVectors(newLat, newLon)

	// Rotate the new basis back to compare it against the original one.
	eThetaNew = RotateVector(eThetaNew, axis, -angleDeg)
	ePhiNew = RotateVector(ePhiNew, axis, -angleDeg)
	eRNew = RotateVector(eRNew, axis, -angleDeg)

	return matrix{
		{dot(eThetaNew, eTheta), dot(eThetaNew, ePhi), dot(eThetaNew, eR)},
		{dot(ePhiNew, eTheta), dot(ePhiNew, ePhi), dot(ePhiNew, eR)},
		{dot(eRNew, eTheta), dot(eRNew, ePhi), dot(eRNew, eR)},
	}
}

// rotationMatrix builds the Rodrigues rotation matrix for the normalized
// axis and angle in degrees.
func rotationMatrix(axis Vector, angleDeg float64) matrix {
	angle := deg2rad(angleDeg)
	norm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	c1, c2, c3 := axis[0]/norm, axis[1]/norm, axis[2]/norm

	cos, sin := math.Cos(angle), math.Sin(angle)
	k := 1 - cos

	return matrix{
		{cos + k*c1*c1, k*c1*c2 - sin*c3, k*c1*c3 + sin*c2},
		{k*c2*c1 + sin*c3, cos + k*c2*c2, k*c2*c3 - sin*c1},
		{k*c3*c1 - sin*c2, k*c3*c2 + sin*c1, cos + k*c3*c3},
	}
}

func latLonToXYZ(lat, lon, r float64) Vector {
	colat := deg2rad(LatToColat(lat))
	lonR := deg2rad(lon)
	return Vector{
		r * math.Sin(colat) * math.Cos(lonR),
		r * math.Sin(colat) * math.Sin(lonR),
		r * math.Cos(colat),
	}
}

func xyzToLatLonRadius(v Vector) (float64, float64, float64) {
	r := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	colat := rad2deg(math.Acos(v[2] / r))
	lon := rad2deg(math.Atan2(v[1], v[0]))
	return ColatToLat(colat), lon, r
}

func (m matrix) mulVec(v Vector) Vector {
	var out Vector
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

func (m matrix) mul(o matrix) matrix {
	var out matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return out
}

func (m matrix) transpose() matrix {
	var out matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

func dot(a, b Vector) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }
func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }
