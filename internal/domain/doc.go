// Package domain models the normalized earthquake source and recording
// station metadata every solver backend renders from.
//
// # Conventions
//
// Coordinates are WGS-84 degrees. Depths and elevations are normalized on
// ingestion: event depth is kilometers below the surface, station elevation
// and burial depth are meters. Source catalogs that report depth in meters
// must convert before constructing an Event.
//
// Moment tensors use the spherical/geographic component convention common to
// global CMT catalogs:
//
//	r = radial (up), t = theta (south), p = phi (east)
//
// giving the six independent components Mrr, Mtt, Mpp, Mrt, Mrp, Mtp in
// Newton-meters. Individual components may legitimately be zero, so record
// validation distinguishes "absent" from "0.0": the tensor is accepted or
// rejected as a unit.
//
// # Derived magnitude
//
// The scalar seismic moment is computed from the diagonal components only,
//
//	M0 = 1/sqrt(2) * sqrt(Mrr^2 + Mtt^2 + Mpp^2)
//
// and the moment magnitude follows the standard relation
//
//	Mw = 2/3 * log10(M0) - 6.0
//
// This diagonal-only form is a property of the deck formats being generated,
// not an approximation choice to revisit.
//
// # Station identifiers
//
// A station id is "<network_code>.<station_code>", split on the first dot.
// Ids are unique within a collected set; collecting a duplicate id replaces
// the earlier record.
package domain
