package backend

import (
	"github.com/geoforge/wavedeck/internal/domain"
	"github.com/geoforge/wavedeck/internal/render"
)

// FormatSpecfemCartesian is the registry name of the SPECFEM3D_CARTESIAN
// backend.
const FormatSpecfemCartesian = "SPECFEM3D_CARTESIAN"

var specfemCartesianRequired = map[string]render.RequiredParam{
	"NPROC": {Coerce: render.Int, Doc: "number of MPI processors"},
	"NSTEP": {Coerce: render.Int, Doc: "the number of time steps"},
	"DT":    {Coerce: render.Float, Doc: "the time increment in seconds"},
	"SIMULATION_TYPE": {Coerce: render.Int,
		Doc: "forward or adjoint simulation, 1 = forward, 2 = adjoint, 3 = both simultaneously"},
}

var specfemCartesianDefaults = map[string]render.DefaultParam{
	"NOISE_TOMOGRAPHY": {Default: 0, Coerce: render.Int,
		Doc: "noise tomography simulation, 0 = earthquake simulation, 1/2/3 = three steps in noise simulation"},
	"SAVE_FORWARD": {Default: false, Coerce: render.Bool, Doc: "save forward wavefield"},
	"UTM_PROJECTION_ZONE": {Default: 11, Coerce: render.Int,
		Doc: "UTM zone, used when SUPPRESS_UTM_PROJECTION is false"},
	"SUPPRESS_UTM_PROJECTION": {Default: true, Coerce: render.Bool, Doc: "suppress the UTM projection"},
	"NGNOD": {Default: 8, Coerce: render.Int,
		Doc: "number of nodes per hexahedral element, 8 or 27 (the internal mesher only supports 8)"},
	"MODEL": {Default: "default", Coerce: render.String,
		Doc: "geological model: default, 1d_prem, 1d_socal, 1d_cascadia, aniso, external, gll, salton_trough, tomo"},
	"APPROXIMATE_OCEAN_LOAD":  {Default: false, Coerce: render.Bool, Doc: "apply approximate ocean loading"},
	"TOPOGRAPHY":              {Default: false, Coerce: render.Bool, Doc: "use surface topography"},
	"ATTENUATION":             {Default: false, Coerce: render.Bool, Doc: "use attenuation"},
	"FULL_ATTENUATION_SOLID":  {Default: false, Coerce: render.Bool, Doc: "use full attenuation in the solid"},
	"ANISOTROPY":              {Default: false, Coerce: render.Bool, Doc: "use anisotropy"},
	"GRAVITY":                 {Default: false, Coerce: render.Bool, Doc: "include gravity"},
	"TOMOGRAPHY_PATH":         {Default: "../DATA/tomo_files/", Coerce: render.String, Doc: "path for external tomographic model files"},
	"USE_OLSEN_ATTENUATION":   {Default: false, Coerce: render.Bool, Doc: "use the Olsen Q_mu = constant * v_s attenuation rule"},
	"OLSEN_ATTENUATION_RATIO": {Default: 0.05, Coerce: render.Float, Doc: "Olsen's constant for the attenuation rule"},
	"PML_CONDITIONS":          {Default: false, Coerce: render.Bool, Doc: "C-PML boundary conditions for a regional simulation"},
	"PML_INSTEAD_OF_FREE_SURFACE": {Default: false, Coerce: render.Bool,
		Doc: "C-PML boundary conditions instead of a free surface on top"},
	"f0_FOR_PML": {Default: 12.7, Coerce: render.Float, Doc: "C-PML dominant frequency"},
	"STACEY_ABSORBING_CONDITIONS": {Default: false, Coerce: render.Bool,
		Doc: "Stacey absorbing boundary conditions for a regional simulation"},
	"STACEY_INSTEAD_OF_FREE_SURFACE": {Default: false, Coerce: render.Bool,
		Doc: "Stacey absorbing top surface (defined in the mesh as free_surface_file)"},
	"CREATE_SHAKEMAP":                {Default: false, Coerce: render.Bool, Doc: "save shakemap files"},
	"MOVIE_SURFACE":                  {Default: false, Coerce: render.Bool, Doc: "save velocity snapshot files for surfaces"},
	"MOVIE_TYPE":                     {Default: 1, Coerce: render.Int, Doc: "1 = top surface, 2 = all external mesh faces"},
	"MOVIE_VOLUME":                   {Default: false, Coerce: render.Bool, Doc: "save volumetric velocity snapshot files"},
	"SAVE_DISPLACEMENT":              {Default: false, Coerce: render.Bool, Doc: "save displacement instead of velocity in snapshots"},
	"USE_HIGHRES_FOR_MOVIES":         {Default: false, Coerce: render.Bool, Doc: "save all GLL points in snapshot files"},
	"NTSTEP_BETWEEN_FRAMES":          {Default: 200, Coerce: render.Int, Doc: "time steps between consecutive snapshots"},
	"HDUR_MOVIE":                     {Default: 0.0, Coerce: render.Float, Doc: "half duration for snapshot files"},
	"SAVE_MESH_FILES":                {Default: false, Coerce: render.Bool, Doc: "save mesh files to check the mesh"},
	"LOCAL_PATH":                     {Default: "../OUTPUT_FILES/DATABASES_MPI", Coerce: render.String, Doc: "path of the local database file on each node"},
	"NTSTEP_BETWEEN_OUTPUT_INFO":     {Default: 500, Coerce: render.Int, Doc: "time steps between time step info output"},
	"NTSTEP_BETWEEN_OUTPUT_SEISMOS":  {Default: 10000, Coerce: render.Int, Doc: "time steps between seismogram writes"},
	"NTSTEP_BETWEEN_READ_ADJSRC":     {Default: 0, Coerce: render.Int, Doc: "time steps between adjoint trace reads, 0 = read all at once"},
	"USE_FORCE_POINT_SOURCE":         {Default: false, Coerce: render.Bool, Doc: "use a FORCESOLUTION point source instead of a CMTSOLUTION moment tensor"},
	"USE_RICKER_TIME_FUNCTION":       {Default: false, Coerce: render.Bool, Doc: "use a Ricker source time function"},
	"PRINT_SOURCE_TIME_FUNCTION":     {Default: false, Coerce: render.Bool, Doc: "print the source time function"},
	"GPU_MODE":                       {Default: false, Coerce: render.Bool, Doc: "run on GPUs"},
}

// SpecfemCartesian builds the SPECFEM3D_CARTESIAN backend: Par_file,
// CMTSOLUTION, and STATIONS for exactly one event.
func SpecfemCartesian() render.Backend {
	return render.Backend{
		Name: FormatSpecfemCartesian,
		Schema: render.Schema{
			Required: specfemCartesianRequired,
			Defaults: specfemCartesianDefaults,
		},
		Render: renderSpecfemCartesian,
	}
}

func renderSpecfemCartesian(cfg render.Config, events []domain.Event, stations []domain.Station) (render.OutputSet, error) {
	if len(events) != 1 {
		return nil, &render.UnsupportedEventCountError{Format: FormatSpecfemCartesian, Want: 1, Got: len(events)}
	}

	d := render.NewDeck()
	d.Comment("simulation input parameters")
	d.Comment("")
	d.Comment("forward or adjoint simulation")
	d.Comment("1 = forward, 2 = adjoint, 3 = both simultaneously")
	d.SetInt("SIMULATION_TYPE", cfg.Int("SIMULATION_TYPE"))
	d.Comment("0 = earthquake simulation, 1/2/3 = three steps in noise simulation")
	d.SetInt("NOISE_TOMOGRAPHY", cfg.Int("NOISE_TOMOGRAPHY"))
	d.SetBool("SAVE_FORWARD", cfg.Bool("SAVE_FORWARD"))
	d.Blank()
	d.Comment("UTM projection parameters")
	d.SetInt("UTM_PROJECTION_ZONE", cfg.Int("UTM_PROJECTION_ZONE"))
	d.SetBool("SUPPRESS_UTM_PROJECTION", cfg.Bool("SUPPRESS_UTM_PROJECTION"))
	d.Blank()
	d.Comment("number of MPI processors")
	d.SetInt("NPROC", cfg.Int("NPROC"))
	d.Blank()
	d.Comment("time step parameters")
	d.SetInt("NSTEP", cfg.Int("NSTEP"))
	d.SetFloat("DT", cfg.Float("DT"))
	d.Blank()
	d.Comment("number of nodes for 2D and 3D shape functions for hexahedra")
	d.SetInt("NGNOD", cfg.Int("NGNOD"))
	d.Blank()
	d.Comment("geological model")
	d.Set("MODEL", cfg.String("MODEL"))
	d.Blank()
	d.Comment("parameters describing the model")
	d.SetBool("APPROXIMATE_OCEAN_LOAD", cfg.Bool("APPROXIMATE_OCEAN_LOAD"))
	d.SetBool("TOPOGRAPHY", cfg.Bool("TOPOGRAPHY"))
	d.SetBool("ATTENUATION", cfg.Bool("ATTENUATION"))
	d.SetBool("FULL_ATTENUATION_SOLID", cfg.Bool("FULL_ATTENUATION_SOLID"))
	d.SetBool("ANISOTROPY", cfg.Bool("ANISOTROPY"))
	d.SetBool("GRAVITY", cfg.Bool("GRAVITY"))
	d.Blank()
	d.Comment("path for external tomographic model files")
	d.Set("TOMOGRAPHY_PATH", cfg.String("TOMOGRAPHY_PATH"))
	d.Blank()
	d.Comment("Olsen's constant for the Q_mu = constant * v_s attenuation rule")
	d.SetBool("USE_OLSEN_ATTENUATION", cfg.Bool("USE_OLSEN_ATTENUATION"))
	d.SetFloat("OLSEN_ATTENUATION_RATIO", cfg.Float("OLSEN_ATTENUATION_RATIO"))
	d.Blank()
	d.Comment("C-PML boundary conditions")
	d.SetBool("PML_CONDITIONS", cfg.Bool("PML_CONDITIONS"))
	d.SetBool("PML_INSTEAD_OF_FREE_SURFACE", cfg.Bool("PML_INSTEAD_OF_FREE_SURFACE"))
	d.SetFloat("f0_FOR_PML", cfg.Float("f0_FOR_PML"))
	d.Blank()
	d.Comment("Stacey absorbing boundary conditions (obsolete, prefer C-PML)")
	d.SetBool("STACEY_ABSORBING_CONDITIONS", cfg.Bool("STACEY_ABSORBING_CONDITIONS"))
	d.SetBool("STACEY_INSTEAD_OF_FREE_SURFACE", cfg.Bool("STACEY_INSTEAD_OF_FREE_SURFACE"))
	d.Blank()
	d.Comment("movie and shakemap output")
	d.SetBool("CREATE_SHAKEMAP", cfg.Bool("CREATE_SHAKEMAP"))
	d.SetBool("MOVIE_SURFACE", cfg.Bool("MOVIE_SURFACE"))
	d.SetInt("MOVIE_TYPE", cfg.Int("MOVIE_TYPE"))
	d.SetBool("MOVIE_VOLUME", cfg.Bool("MOVIE_VOLUME"))
	d.SetBool("SAVE_DISPLACEMENT", cfg.Bool("SAVE_DISPLACEMENT"))
	d.SetBool("USE_HIGHRES_FOR_MOVIES", cfg.Bool("USE_HIGHRES_FOR_MOVIES"))
	d.SetInt("NTSTEP_BETWEEN_FRAMES", cfg.Int("NTSTEP_BETWEEN_FRAMES"))
	d.SetFloat("HDUR_MOVIE", cfg.Float("HDUR_MOVIE"))
	d.Blank()
	d.Comment("save mesh files to check the mesh")
	d.SetBool("SAVE_MESH_FILES", cfg.Bool("SAVE_MESH_FILES"))
	d.Blank()
	d.Comment("path of the local database file on each node")
	d.Set("LOCAL_PATH", cfg.String("LOCAL_PATH"))
	d.SetInt("NTSTEP_BETWEEN_OUTPUT_INFO", cfg.Int("NTSTEP_BETWEEN_OUTPUT_INFO"))
	d.SetInt("NTSTEP_BETWEEN_OUTPUT_SEISMOS", cfg.Int("NTSTEP_BETWEEN_OUTPUT_SEISMOS"))
	d.SetInt("NTSTEP_BETWEEN_READ_ADJSRC", cfg.Int("NTSTEP_BETWEEN_READ_ADJSRC"))
	d.Blank()
	d.Comment("source settings")
	d.SetBool("USE_FORCE_POINT_SOURCE", cfg.Bool("USE_FORCE_POINT_SOURCE"))
	d.SetBool("USE_RICKER_TIME_FUNCTION", cfg.Bool("USE_RICKER_TIME_FUNCTION"))
	d.SetBool("PRINT_SOURCE_TIME_FUNCTION", cfg.Bool("PRINT_SOURCE_TIME_FUNCTION"))
	d.Blank()
	d.Comment("set to true to use GPUs")
	d.SetBool("GPU_MODE", cfg.Bool("GPU_MODE"))

	return render.OutputSet{
		"Par_file":    d.String(),
		"CMTSOLUTION": cmtSolution(events[0]),
		"STATIONS":    stationsFile(stations),
	}, nil
}
