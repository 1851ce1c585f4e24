package backend

import (
	"fmt"
	"strings"

	"github.com/geoforge/wavedeck/internal/domain"
)

// newtonMeterToDyneCM converts moment tensor components from N*m to the
// dyne*cm the SPECFEM CMTSOLUTION format expects.
const newtonMeterToDyneCM = 1e7

// cmtSolution renders the CMTSOLUTION file shared by the SPECFEM backends.
// The layout is fixed by the solvers: coordinates to 5 decimals, seconds to
// 2, tensor components to 6 significant digits in dyne*cm.
func cmtSolution(ev domain.Event) string {
	mag := ev.Tensor.MomentMagnitude()
	t := ev.OriginTime

	name := t.Format("2006-01-02T15:04:05.000000Z") + "_" + fmt.Sprintf("%.1f", mag)
	seconds := float64(t.Second()) + float64(t.Nanosecond())/1e9

	var b strings.Builder
	fmt.Fprintf(&b, "PDE %d %d %d %d %d %.2f %.5f %.5f %.5f %.1f %.1f %s\n",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), seconds,
		ev.Latitude, ev.Longitude, ev.DepthInKM, mag, mag, name)
	b.WriteString("event name:      0000000\n")
	b.WriteString("time shift:       0.0000\n")
	fmt.Fprintf(&b, "half duration:    %.4f\n", 0.0)
	fmt.Fprintf(&b, "latitude:       %.5f\n", ev.Latitude)
	fmt.Fprintf(&b, "longitude:      %.5f\n", ev.Longitude)
	fmt.Fprintf(&b, "depth:% 17.5f\n", ev.DepthInKM)
	fmt.Fprintf(&b, "Mrr:         %.6g\n", ev.Tensor.Mrr*newtonMeterToDyneCM)
	fmt.Fprintf(&b, "Mtt:         %.6g\n", ev.Tensor.Mtt*newtonMeterToDyneCM)
	fmt.Fprintf(&b, "Mpp:         %.6g\n", ev.Tensor.Mpp*newtonMeterToDyneCM)
	fmt.Fprintf(&b, "Mrt:         %.6g\n", ev.Tensor.Mrt*newtonMeterToDyneCM)
	fmt.Fprintf(&b, "Mrp:         %.6g\n", ev.Tensor.Mrp*newtonMeterToDyneCM)
	fmt.Fprintf(&b, "Mtp:         %.6g\n", ev.Tensor.Mtp*newtonMeterToDyneCM)
	return b.String()
}

// stationsFile renders the fixed-width STATIONS file: one line per station
// with coordinates to 5 decimals and elevation/burial depth to 1.
func stationsFile(stations []domain.Station) string {
	var b strings.Builder
	for _, st := range stations {
		fmt.Fprintf(&b, "%s %s %.5f %.5f %.1f %.1f\n",
			st.StationCode(), st.NetworkCode(),
			st.Latitude, st.Longitude, st.ElevationInM, st.LocalDepthInM)
	}
	return b.String()
}
