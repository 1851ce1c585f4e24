package domain

import (
	"fmt"
	"math"
	"time"
)

// MomentTensor holds the six independent components of a symmetric seismic
// moment tensor in N*m, spherical convention (r=up, t=south, p=east).
type MomentTensor struct {
	Mrr float64
	Mtt float64
	Mpp float64
	Mrt float64
	Mrp float64
	Mtp float64
}

// ScalarMoment computes M0 from the diagonal components.
func (m MomentTensor) ScalarMoment() float64 {
	return 1.0 / math.Sqrt2 * math.Sqrt(m.Mrr*m.Mrr+m.Mtt*m.Mtt+m.Mpp*m.Mpp)
}

// MomentMagnitude computes Mw from the scalar moment.
func (m MomentTensor) MomentMagnitude() float64 {
	return 2.0/3.0*math.Log10(m.ScalarMoment()) - 6.0
}

// Event is a single normalized seismic source. Events are immutable once
// collected; renderers that need rotated coordinates work on copies.
type Event struct {
	Latitude   float64
	Longitude  float64
	DepthInKM  float64
	OriginTime time.Time
	Tensor     MomentTensor

	// Description is an optional free-text label.
	Description string

	// EventID is only used for collection-time filtering and is stripped
	// before an event reaches a renderer.
	EventID string
}

// InvalidRecordError reports an event or station record that is missing
// required fields or carries values that cannot be interpreted.
type InvalidRecordError struct {
	Kind   string // "event" or "station"
	ID     string // record identifier when one exists
	Field  string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	msg := fmt.Sprintf("invalid %s record", e.Kind)
	if e.ID != "" {
		msg += " " + e.ID
	}
	return fmt.Sprintf("%s: field %q: %s", msg, e.Field, e.Reason)
}

// tensorFieldNames lists the moment tensor record keys in canonical order.
var tensorFieldNames = [6]string{"m_rr", "m_tt", "m_pp", "m_rt", "m_rp", "m_tp"}

// EventRecord is the loose ingestion form of an Event, as decoded from JSON
// or YAML documents. Pointer fields distinguish "absent" from "zero".
type EventRecord struct {
	Latitude   *Number `json:"latitude" yaml:"latitude"`
	Longitude  *Number `json:"longitude" yaml:"longitude"`
	DepthInKM  *Number `json:"depth_in_km" yaml:"depth_in_km"`
	OriginTime *string `json:"origin_time" yaml:"origin_time"`

	Mrr *Number `json:"m_rr" yaml:"m_rr"`
	Mtt *Number `json:"m_tt" yaml:"m_tt"`
	Mpp *Number `json:"m_pp" yaml:"m_pp"`
	Mrt *Number `json:"m_rt" yaml:"m_rt"`
	Mrp *Number `json:"m_rp" yaml:"m_rp"`
	Mtp *Number `json:"m_tp" yaml:"m_tp"`

	Description *string `json:"description" yaml:"description"`
	EventID     string  `json:"_event_id" yaml:"_event_id"`
}

// Event validates the record and builds a normalized Event. All ten required
// fields must be present; the six tensor components are validated as a unit
// so a partially specified tensor is rejected even if the rest is complete.
func (r EventRecord) Event() (Event, error) {
	missing := func(field string) error {
		return &InvalidRecordError{Kind: "event", ID: r.EventID, Field: field, Reason: "required field is missing"}
	}

	if r.Latitude == nil {
		return Event{}, missing("latitude")
	}
	if r.Longitude == nil {
		return Event{}, missing("longitude")
	}
	if r.DepthInKM == nil {
		return Event{}, missing("depth_in_km")
	}
	if r.OriginTime == nil {
		return Event{}, missing("origin_time")
	}

	components := [6]*Number{r.Mrr, r.Mtt, r.Mpp, r.Mrt, r.Mrp, r.Mtp}
	for i, c := range components {
		if c == nil {
			return Event{}, &InvalidRecordError{
				Kind: "event", ID: r.EventID, Field: tensorFieldNames[i],
				Reason: "all six moment tensor components are required",
			}
		}
	}

	origin, err := ParseOriginTime(*r.OriginTime)
	if err != nil {
		return Event{}, &InvalidRecordError{
			Kind: "event", ID: r.EventID, Field: "origin_time", Reason: err.Error(),
		}
	}

	ev := Event{
		Latitude:   float64(*r.Latitude),
		Longitude:  float64(*r.Longitude),
		DepthInKM:  float64(*r.DepthInKM),
		OriginTime: origin,
		Tensor: MomentTensor{
			Mrr: float64(*r.Mrr),
			Mtt: float64(*r.Mtt),
			Mpp: float64(*r.Mpp),
			Mrt: float64(*r.Mrt),
			Mrp: float64(*r.Mrp),
			Mtp: float64(*r.Mtp),
		},
		EventID: r.EventID,
	}
	if r.Description != nil {
		ev.Description = *r.Description
	}
	return ev, nil
}

// originTimeLayouts are the accepted timestamp spellings, tried in order.
// Catalog exports commonly omit the zone; those are taken as UTC.
var originTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999Z",
}

// ParseOriginTime parses an absolute event timestamp with up to microsecond
// precision.
func ParseOriginTime(s string) (time.Time, error) {
	for _, layout := range originTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as an origin time", s)
}
