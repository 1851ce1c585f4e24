package backend

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/geoforge/wavedeck/internal/domain"
	"github.com/geoforge/wavedeck/internal/render"
	"github.com/geoforge/wavedeck/internal/rotation"
)

// FormatSes3d is the registry name of the SES3D 4.1 backend.
const FormatSes3d = "SES3D_4_1"

// earthRadiusInM converts mesh depths to the radii the setup file wants.
const earthRadiusInM = 6371 * 1000

// ses3dSimulationTypes maps the simulation_type value to the adjoint_flag
// written into the setup file.
var ses3dSimulationTypes = map[string]int{
	"normal simulation": 0,
	"adjoint forward":   1,
	"adjoint reverse":   2,
}

var ses3dRequired = map[string]render.RequiredParam{
	"output_folder":           {Coerce: render.String, Doc: "the output directory"},
	"number_of_time_steps":    {Coerce: render.Int, Doc: "the number of time steps"},
	"time_increment_in_s":     {Coerce: render.Float, Doc: "the time increment in seconds"},
	"mesh_min_latitude":       {Coerce: render.Float, Doc: "the minimum latitude of the mesh"},
	"mesh_max_latitude":       {Coerce: render.Float, Doc: "the maximum latitude of the mesh"},
	"mesh_min_longitude":      {Coerce: render.Float, Doc: "the minimum longitude of the mesh"},
	"mesh_max_longitude":      {Coerce: render.Float, Doc: "the maximum longitude of the mesh"},
	"mesh_min_depth_in_km":    {Coerce: render.Float, Doc: "the minimum depth of the mesh in km"},
	"mesh_max_depth_in_km":    {Coerce: render.Float, Doc: "the maximum depth of the mesh in km"},
	"nx_global":               {Coerce: render.Int, Doc: "number of elements in theta direction"},
	"ny_global":               {Coerce: render.Int, Doc: "number of elements in phi direction"},
	"nz_global":               {Coerce: render.Int, Doc: "number of elements in r direction"},
	"px":                      {Coerce: render.Int, Doc: "number of processors in theta direction"},
	"py":                      {Coerce: render.Int, Doc: "number of processors in phi direction"},
	"pz":                      {Coerce: render.Int, Doc: "number of processors in r direction"},
	"source_time_function":    {Coerce: render.FloatList, Doc: "the source time function samples"},
}

var ses3dDefaults = map[string]render.DefaultParam{
	"event_tag": {Default: "1", Coerce: render.String,
		Doc: "the name of the event, appended to the event and recfile names"},
	"is_dissipative": {Default: true, Coerce: render.Bool, Doc: "dissipative simulation or not"},
	"stf_header": {Default: []string{
		"Source time function written by wavedeck.",
		"The original source of the samples is not",
		"known to the generator.",
	}, Coerce: render.StringList,
		Doc: "up to four comment lines stored at the top of the stf file"},
	"output_displacement":            {Default: false, Coerce: render.Bool, Doc: "output the displacement field"},
	"displacement_snapshot_sampling": {Default: 10000, Coerce: render.Int, Doc: "sampling rate of the output displacement field"},
	"lagrange_polynomial_degree":     {Default: 4, Coerce: render.Int, Doc: "degree of the Lagrange polynomials"},
	"simulation_type": {Default: "normal simulation", Coerce: render.String,
		Doc: "one of 'normal simulation', 'adjoint forward', 'adjoint reverse'"},
	"adjoint_forward_sampling_rate": {Default: 15, Coerce: render.Int,
		Doc: "sampling rate of the adjoint forward field"},
	"adjoint_forward_wavefield_output_folder": {Default: "", Coerce: render.String,
		Doc: "where the adjoint forward field is stored, defaults to a subfolder of the output directory"},
	"rotation_angle_in_degree": {Default: 0.0, Coerce: render.Float,
		Doc: "rotation of the mesh in degrees, all data is rotated the opposite way"},
	"rotation_axis": {Default: []float64{0.0, 0.0, 1.0}, Coerce: render.FloatList,
		Doc: "the rotation axis as [x, y, z] in the SES3D coordinate system"},
	"Q_model_relaxation_times": {Default: []float64{1.7308, 14.3961, 22.9973}, Coerce: render.FloatList,
		Doc: "the relaxation times of the Q model mechanisms"},
	"Q_model_weights_of_relaxation_mechanisms": {Default: []float64{2.5100, 2.4354, 0.0879}, Coerce: render.FloatList,
		Doc: "the weights of the Q model relaxation mechanisms"},
}

// Ses3d builds the SES3D 4.1 backend. The logger reports stations that fall
// outside the mesh and are skipped.
func Ses3d(logger *slog.Logger) render.Backend {
	r := &ses3dRenderer{logger: logger}
	return render.Backend{
		Name: FormatSes3d,
		Schema: render.Schema{
			Required: ses3dRequired,
			Defaults: ses3dDefaults,
		},
		Render: r.render,
	}
}

type ses3dRenderer struct {
	logger *slog.Logger
}

// ses3dMesh is the lateral extent of the mesh used for bounds checks.
type ses3dMesh struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

func (m ses3dMesh) contains(lat, lon float64) bool {
	return m.minLat <= lat && lat <= m.maxLat &&
		m.minLon <= lon && lon <= m.maxLon
}

func (r *ses3dRenderer) render(cfg render.Config, events []domain.Event, stations []domain.Station) (render.OutputSet, error) {
	if len(events) != 1 {
		return nil, &render.UnsupportedEventCountError{Format: FormatSes3d, Want: 1, Got: len(events)}
	}
	event := events[0]

	stfHeader := cfg.Strings("stf_header")
	if len(stfHeader) > 4 {
		return nil, fmt.Errorf("stf_header can hold at most 4 lines, got %d", len(stfHeader))
	}

	simType, ok := ses3dSimulationTypes[cfg.String("simulation_type")]
	if !ok {
		return nil, fmt.Errorf("simulation_type %q is invalid, possible types: %s",
			cfg.String("simulation_type"), strings.Join(simulationTypeNames(), ", "))
	}

	outputFolder := cfg.String("output_folder")
	adjointFolder := cfg.String("adjoint_forward_wavefield_output_folder")
	if adjointFolder == "" {
		adjointFolder = path.Join(outputFolder, "ADJOINT_FORWARD_FIELD")
	}

	// The mesh is rotated by the configured angle, so every coordinate and
	// the moment tensor are rotated the opposite way.
	meshAngle := cfg.Float("rotation_angle_in_degree")
	dataAngle := -meshAngle
	var axis rotation.Vector
	copy(axis[:], cfg.Floats("rotation_axis"))

	lat, lon := event.Latitude, event.Longitude
	tensor := event.Tensor
	if meshAngle != 0 {
		lat, lon = rotation.RotateLatLon(lat, lon, axis, dataAngle)
		tensor = rotation.RotateMomentTensor(tensor, event.Latitude, event.Longitude, axis, dataAngle)
	}

	mesh := ses3dMesh{
		minLat: cfg.Float("mesh_min_latitude"),
		maxLat: cfg.Float("mesh_max_latitude"),
		minLon: cfg.Float("mesh_min_longitude"),
		maxLon: cfg.Float("mesh_max_longitude"),
	}
	if !mesh.contains(lat, lon) {
		return nil, fmt.Errorf("event at latitude %.4f, longitude %.4f is outside the mesh", lat, lon)
	}

	eventTag := cfg.String("event_tag")
	out := render.OutputSet{
		"setup":                r.setupFile(cfg, simType, adjointFolder),
		"event_" + eventTag:    r.eventFile(cfg, lat, lon, event.DepthInKM, tensor, outputFolder),
		"event_list":           fmt.Sprintf("%-44d! n_events = number of events\n%s", 1, eventTag),
		"recfile_" + eventTag:  r.recfile(stations, mesh, axis, dataAngle, meshAngle != 0),
		"relax":                relaxFile(cfg.Floats("Q_model_relaxation_times"), cfg.Floats("Q_model_weights_of_relaxation_mechanisms")),
		"stf":                  stfFile(stfHeader, cfg.Floats("source_time_function")),
	}

	// Every SES3D input file ends with an empty line.
	for name, content := range out {
		out[name] = content + "\n\n"
	}
	return out, nil
}

func (r *ses3dRenderer) setupFile(cfg render.Config, simType int, adjointFolder string) string {
	var b strings.Builder
	b.WriteString(sectionHeader("MODEL", 139))
	// Colatitude swaps the minimum and maximum latitude.
	line44f(&b, rotation.LatToColat(cfg.Float("mesh_max_latitude")), "theta_min (colatitude) in degrees")
	line44f(&b, rotation.LatToColat(cfg.Float("mesh_min_latitude")), "theta_max (colatitude) in degrees")
	line44f(&b, cfg.Float("mesh_min_longitude"), "phi_min (longitude) in degrees")
	line44f(&b, cfg.Float("mesh_max_longitude"), "phi_max (longitude) in degrees")
	// Minimum and maximum radius and depth are inverse to each other.
	line44f(&b, earthRadiusInM-cfg.Float("mesh_max_depth_in_km")*1000.0, "z_min (radius) in m")
	line44f(&b, earthRadiusInM-cfg.Float("mesh_min_depth_in_km")*1000.0, "z_max (radius) in m")
	line44d(&b, boolToInt(cfg.Bool("is_dissipative")), "is_diss")
	line44d(&b, 1, "model_type")
	b.WriteString(sectionHeader("COMPUTATIONAL SETUP (PARALLELISATION)", 139))
	line44d(&b, cfg.Int("nx_global"), "nx_global, (nx_global+px = global # elements in theta direction)")
	line44d(&b, cfg.Int("ny_global"), "ny_global, (ny_global+py = global # elements in phi direction)")
	line44d(&b, cfg.Int("nz_global"), "nz_global, (nz_global+pz = global # of elements in r direction)")
	line44d(&b, cfg.Int("lagrange_polynomial_degree"), "lpd, LAGRANGE polynomial degree")
	line44d(&b, cfg.Int("px"), "px, processors in theta direction")
	line44d(&b, cfg.Int("py"), "py, processors in phi direction")
	line44d(&b, cfg.Int("pz"), "pz, processors in r direction")
	b.WriteString(sectionHeader("ADJOINT PARAMETERS", 139))
	line44d(&b, simType, "adjoint_flag (0=normal simulation, 1=adjoint forward, 2=adjoint reverse)")
	line44d(&b, cfg.Int("adjoint_forward_sampling_rate"), "samp_ad, sampling rate of forward field")
	b.WriteString(adjointFolder)
	return b.String()
}

func (r *ses3dRenderer) eventFile(cfg render.Config, lat, lon, depthInKM float64, mt domain.MomentTensor, outputFolder string) string {
	var b strings.Builder
	b.WriteString(sectionHeader("SIMULATION PARAMETERS", 104))
	line44d(&b, cfg.Int("number_of_time_steps"), "nt, number of time steps")
	line44f(&b, cfg.Float("time_increment_in_s"), "dt in sec, time increment")
	b.WriteString(sectionHeader("SOURCE", 104))
	line44f(&b, rotation.LatToColat(lat), "xxs, theta-coord. center of source in degrees")
	line44f(&b, lon, "yys, phi-coord. center of source in degrees")
	line44f(&b, depthInKM*1000.0, "zzs, source depth in (m)")
	line44d(&b, 10, "srctype, 1:f_x, 2:f_y, 3:f_z, 10:M_ij")
	line44e(&b, mt.Mtt, "M_theta_theta")
	line44e(&b, mt.Mpp, "M_phi_phi")
	line44e(&b, mt.Mrr, "M_r_r")
	line44e(&b, mt.Mtp, "M_theta_phi")
	line44e(&b, mt.Mrt, "M_theta_r")
	line44e(&b, mt.Mrp, "M_phi_r")
	b.WriteString(sectionHeader("OUTPUT DIRECTORY", 103))
	b.WriteString(outputFolder + "\n")
	b.WriteString(sectionHeader("OUTPUT FLAGS", 103))
	line44d(&b, cfg.Int("displacement_snapshot_sampling"), "ssamp, snapshot sampling")
	fmt.Fprintf(&b, "%-44d! output_displacement, output displacement field (1=yes,0=no)",
		boolToInt(cfg.Bool("output_displacement")))
	return b.String()
}

// recfile lists the receivers that fall inside the mesh: a count line, then a
// padded id line and a coordinate line per station.
func (r *ses3dRenderer) recfile(stations []domain.Station, mesh ses3dMesh, axis rotation.Vector, dataAngle float64, rotate bool) string {
	var parts []string
	for _, st := range stations {
		lat, lon := st.Latitude, st.Longitude
		if rotate {
			lat, lon = rotation.RotateLatLon(lat, lon, axis, dataAngle)
		}
		if !mesh.contains(lat, lon) {
			r.logger.Warn("station outside the mesh, skipping",
				slog.String("station", st.ID),
				slog.Float64("latitude", lat),
				slog.Float64("longitude", lon))
			continue
		}

		// Receivers cannot be above the surface.
		depth := -(st.ElevationInM - st.LocalDepthInM)
		if depth < 0 {
			depth = 0.0
		}
		parts = append(parts, fmt.Sprintf("%s.%s.___",
			padUnderscore(st.NetworkCode(), 2), padUnderscore(st.StationCode(), 5)))
		parts = append(parts, fmt.Sprintf("%.6f %.6f %.1f",
			rotation.LatToColat(lat), lon, depth))
	}
	lines := append([]string{fmt.Sprintf("%d", len(parts)/2)}, parts...)
	return strings.Join(lines, "\n")
}

func relaxFile(times, weights []float64) string {
	var b strings.Builder
	b.WriteString(sectionHeader("RELAXATION TIMES [s]", 42))
	for _, t := range times {
		fmt.Fprintf(&b, "%.6f\n", t)
	}
	b.WriteString(sectionHeader("WEIGHTS OF RELAXATION MECHANISMS", 42))
	for i, w := range weights {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%.6f", w)
	}
	return b.String()
}

// stfFile holds a four line comment header followed by one sample per line.
func stfFile(header []string, samples []float64) string {
	lines := make([]string, 0, 4+len(samples))
	for _, h := range header {
		lines = append(lines, "# "+strings.ReplaceAll(strings.TrimSpace(h), "\n", " "))
	}
	for len(lines) < 4 {
		lines = append(lines, "#")
	}
	for _, s := range samples {
		lines = append(lines, fmt.Sprintf("%e", s))
	}
	return strings.Join(lines, "\n")
}

// sectionHeader pads the title with "=" to the width the solver parses.
func sectionHeader(title string, width int) string {
	return title + " " + strings.Repeat("=", width-len(title)-1) + "\n"
}

func line44f(b *strings.Builder, v float64, comment string) {
	fmt.Fprintf(b, "%-44.6f! %s\n", v, comment)
}

func line44d(b *strings.Builder, v int, comment string) {
	fmt.Fprintf(b, "%-44d! %s\n", v, comment)
}

func line44e(b *strings.Builder, v float64, comment string) {
	fmt.Fprintf(b, "%-44.6e! %s\n", v, comment)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func padUnderscore(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("_", width-len(s))
}

func simulationTypeNames() []string {
	names := make([]string, 0, len(ses3dSimulationTypes))
	for name := range ses3dSimulationTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
