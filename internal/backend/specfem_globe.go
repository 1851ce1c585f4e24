package backend

import (
	"fmt"
	"strings"

	"github.com/geoforge/wavedeck/internal/domain"
	"github.com/geoforge/wavedeck/internal/render"
)

// FormatSpecfemGlobe is the registry name of the SPECFEM3D_GLOBE backend.
const FormatSpecfemGlobe = "SPECFEM3D_GLOBE"

// seismogramFormats are the accepted OUTPUT_SEISMOS_FORMAT values. The value
// fans out into four boolean flags in the Par_file.
var seismogramFormats = []string{"ASCII", "SAC_ALPHANUM", "SAC_BINARY", "ASDF"}

var specfemGlobeRequired = map[string]render.RequiredParam{
	"NCHUNKS": {Coerce: render.Int, Doc: "number of chunks (1, 2, 3, or 6)"},
	"NEX_XI": {Coerce: render.Int,
		Doc: "number of elements at the surface along the xi side of the first chunk (must be a multiple of 16 and 8 * a multiple of NPROC_XI)"},
	"NEX_ETA": {Coerce: render.Int,
		Doc: "number of elements at the surface along the eta side of the first chunk (must be a multiple of 16 and 8 * a multiple of NPROC_ETA)"},
	"NPROC_XI":  {Coerce: render.Int, Doc: "number of MPI processors along the xi side of the first chunk"},
	"NPROC_ETA": {Coerce: render.Int, Doc: "number of MPI processors along the eta side of the first chunk"},
	"MODEL":     {Coerce: render.String, Doc: "the earth model, see the solver manual for the choices"},
	"RECORD_LENGTH_IN_MINUTES": {Coerce: render.Float, Doc: "record length in minutes"},
	"SIMULATION_TYPE": {Coerce: render.Int,
		Doc: "forward or adjoint simulation, 1 = forward, 2 = adjoint, 3 = both simultaneously"},
}

var specfemGlobeDefaults = map[string]render.DefaultParam{
	"NOISE_TOMOGRAPHY": {Default: 0, Coerce: render.Int,
		Doc: "noise tomography simulation, 0 = earthquake simulation, 1/2/3 = three steps in noise simulation"},
	"SAVE_FORWARD":                  {Default: false, Coerce: render.Bool, Doc: "save the last frame of the forward simulation"},
	"ANGULAR_WIDTH_XI_IN_DEGREES":   {Default: 90.0, Coerce: render.Float, Doc: "width of one side of the chunk"},
	"ANGULAR_WIDTH_ETA_IN_DEGREES":  {Default: 90.0, Coerce: render.Float, Doc: "width of the other side of the chunk"},
	"CENTER_LATITUDE_IN_DEGREES":    {Default: 40.0, Coerce: render.Float, Doc: "latitude of the chunk center"},
	"CENTER_LONGITUDE_IN_DEGREES":   {Default: 10.0, Coerce: render.Float, Doc: "longitude of the chunk center"},
	"GAMMA_ROTATION_AZIMUTH": {Default: 20.0, Coerce: render.Float,
		Doc: "rotation angle of the chunk about its center, counter clockwise from due North, in degrees"},
	"OCEANS":               {Default: false, Coerce: render.Bool, Doc: "include the effect of the oceans"},
	"ELLIPTICITY":          {Default: false, Coerce: render.Bool, Doc: "include the effect of ellipticity"},
	"TOPOGRAPHY":           {Default: false, Coerce: render.Bool, Doc: "include surface topography"},
	"GRAVITY":              {Default: false, Coerce: render.Bool, Doc: "include gravity"},
	"ROTATION":             {Default: false, Coerce: render.Bool, Doc: "include the effect of the earth's rotation"},
	"ATTENUATION":          {Default: false, Coerce: render.Bool, Doc: "include attenuation"},
	"ABSORBING_CONDITIONS": {Default: false, Coerce: render.Bool, Doc: "absorbing boundary conditions for a regional simulation"},
	"ATTENUATION_1D_WITH_3D_STORAGE": {Default: true, Coerce: render.Bool,
		Doc: "mimic a 3D attenuation model with 1D attenuation storage"},
	"PARTIAL_PHYS_DISPERSION_ONLY": {Default: true, Coerce: render.Bool,
		Doc: "undo attenuation approximately for kernel calculations"},
	"UNDO_ATTENUATION": {Default: false, Coerce: render.Bool,
		Doc: "undo attenuation exactly for kernel calculations, needs significant temporary disk space"},
	"NT_DUMP_ATTENUATION": {Default: 100, Coerce: render.Int,
		Doc: "time steps between restart file dumps when UNDO_ATTENUATION is on"},
	"EXACT_MASS_MATRIX_FOR_ROTATION": {Default: false, Coerce: render.Bool,
		Doc: "use three mass matrices to handle rotation very accurately"},
	"USE_LDDRK":                      {Default: false, Coerce: render.Bool, Doc: "LDDRK high-order time scheme instead of Newmark"},
	"INCREASE_CFL_FOR_LDDRK":         {Default: true, Coerce: render.Bool, Doc: "scale the Newmark time step up when LDDRK is on"},
	"RATIO_BY_WHICH_TO_INCREASE_IT":  {Default: 1.5, Coerce: render.Float, Doc: "time step scaling for LDDRK"},
	"MOVIE_SURFACE":                  {Default: false, Coerce: render.Bool, Doc: "save surface movie frames"},
	"MOVIE_VOLUME":                   {Default: false, Coerce: render.Bool, Doc: "save volumetric movie frames"},
	"MOVIE_COARSE":                   {Default: false, Coerce: render.Bool, Doc: "save movie frames only at element corners"},
	"NTSTEP_BETWEEN_FRAMES":          {Default: 100, Coerce: render.Int, Doc: "time steps between consecutive movie frames"},
	"HDUR_MOVIE":                     {Default: 0.0, Coerce: render.Float, Doc: "half duration for movie files"},
	"MOVIE_VOLUME_TYPE": {Default: 2, Coerce: render.Int,
		Doc: "1 = strain, 2 = time integral of strain, 3 = mu * time integral of strain, 4 = trace and deviatoric stress, 5 = displacement, 6 = velocity"},
	"MOVIE_TOP_KM":    {Default: -100.0, Coerce: render.Float, Doc: "top of the movie volume in km, -100 to be sure the surface is stored"},
	"MOVIE_BOTTOM_KM": {Default: 1000.0, Coerce: render.Float, Doc: "bottom of the movie volume in km"},
	"MOVIE_WEST_DEG":  {Default: -90.0, Coerce: render.Float, Doc: "western edge of the movie volume, degrees East"},
	"MOVIE_EAST_DEG":  {Default: 90.0, Coerce: render.Float, Doc: "eastern edge of the movie volume, degrees East"},
	"MOVIE_NORTH_DEG": {Default: 90.0, Coerce: render.Float, Doc: "northern edge of the movie volume, degrees North"},
	"MOVIE_SOUTH_DEG": {Default: -90.0, Coerce: render.Float, Doc: "southern edge of the movie volume, degrees North"},
	"MOVIE_START":     {Default: 0, Coerce: render.Int, Doc: "first time step stored in the movie volume"},
	"MOVIE_STOP":      {Default: 40000, Coerce: render.Int, Doc: "last time step stored in the movie volume"},
	"SAVE_MESH_FILES": {Default: false, Coerce: render.Bool, Doc: "save mesh files to check the mesh"},
	"NUMBER_OF_RUNS":  {Default: 1, Coerce: render.Int, Doc: "number of restart runs, 1 for no restart files"},
	"NUMBER_OF_THIS_RUN": {Default: 1, Coerce: render.Int, Doc: "index of this restart run"},
	"LOCAL_PATH":      {Default: "./DATABASES_MPI", Coerce: render.String, Doc: "path of the local database files on each node"},
	"LOCAL_TMP_PATH":  {Default: "./DATABASES_MPI", Coerce: render.String, Doc: "path for temporary wavefield, kernel, and movie files"},
	"NTSTEP_BETWEEN_OUTPUT_INFO": {Default: 1000, Coerce: render.Int,
		Doc: "time steps between time step info output"},
	"NTSTEP_BETWEEN_OUTPUT_SEISMOS": {Default: 5000000, Coerce: render.Int,
		Doc: "time steps between temporary seismogram writes"},
	"NTSTEP_BETWEEN_READ_ADJSRC": {Default: 1000, Coerce: render.Int, Doc: "time steps between adjoint trace reads"},
	"OUTPUT_SEISMOS_FORMAT": {Default: "ASCII", Coerce: render.String,
		Doc: "seismogram output format, one of ASCII, SAC_ALPHANUM, SAC_BINARY, ASDF"},
	"ROTATE_SEISMOGRAMS_RT": {Default: false, Coerce: render.Bool,
		Doc: "rotate seismograms to Radial-Transverse-Z instead of North-East-Z"},
	"WRITE_SEISMOGRAMS_BY_MASTER": {Default: true, Coerce: render.Bool,
		Doc: "master process writes all seismograms instead of every process writing in parallel"},
	"SAVE_ALL_SEISMOS_IN_ONE_FILE": {Default: false, Coerce: render.Bool,
		Doc: "save all seismograms in one combined file to avoid overloading shared file systems"},
	"USE_BINARY_FOR_LARGE_FILE":  {Default: false, Coerce: render.Bool, Doc: "binary storage for the combined seismogram file"},
	"RECEIVERS_CAN_BE_BURIED":    {Default: true, Coerce: render.Bool, Doc: "allow receivers below the surface"},
	"PRINT_SOURCE_TIME_FUNCTION": {Default: false, Coerce: render.Bool, Doc: "print the source time function"},
	"ANISOTROPIC_KL": {Default: false, Coerce: render.Bool,
		Doc: "compute anisotropic kernels in crust and mantle instead of isotropic ones"},
	"SAVE_TRANSVERSE_KL_ONLY": {Default: false, Coerce: render.Bool,
		Doc: "output only transverse isotropic kernels when ANISOTROPIC_KL is on"},
	"APPROXIMATE_HESS_KL": {Default: false, Coerce: render.Bool,
		Doc: "output the approximate Hessian in the crust mantle region"},
	"USE_FULL_TISO_MANTLE": {Default: false, Coerce: render.Bool,
		Doc: "allow radial anisotropy from the bottom of the crust down to the transition zone"},
	"SAVE_SOURCE_MASK": {Default: false, Coerce: render.Bool,
		Doc: "output a kernel mask to zero out the source region"},
	"SAVE_REGULAR_KL": {Default: false, Coerce: render.Bool,
		Doc: "output kernels on a regular grid instead of the GLL mesh points"},
	"GPU_MODE": {Default: false, Coerce: render.Bool, Doc: "run on GPUs"},
}

// SpecfemGlobe builds the SPECFEM3D_GLOBE backend: Par_file, CMTSOLUTION,
// and STATIONS for exactly one event on a chunked global mesh.
func SpecfemGlobe() render.Backend {
	return render.Backend{
		Name: FormatSpecfemGlobe,
		Schema: render.Schema{
			Required: specfemGlobeRequired,
			Defaults: specfemGlobeDefaults,
		},
		Render: renderSpecfemGlobe,
	}
}

func renderSpecfemGlobe(cfg render.Config, events []domain.Event, stations []domain.Station) (render.OutputSet, error) {
	if len(events) != 1 {
		return nil, &render.UnsupportedEventCountError{Format: FormatSpecfemGlobe, Want: 1, Got: len(events)}
	}

	format := cfg.String("OUTPUT_SEISMOS_FORMAT")
	seismosASCII, seismosSACAlphanum, seismosSACBinary, seismosASDF := false, false, false, false
	switch format {
	case "ASCII":
		seismosASCII = true
	case "SAC_ALPHANUM":
		seismosSACAlphanum = true
	case "SAC_BINARY":
		seismosSACBinary = true
	case "ASDF":
		seismosASDF = true
	default:
		return nil, fmt.Errorf("seismogram format %q is invalid, possible formats: %s",
			format, strings.Join(seismogramFormats, ", "))
	}

	d := render.NewDeck()
	d.Comment("simulation input parameters")
	d.Comment("")
	d.Comment("forward or adjoint simulation")
	d.SetInt("SIMULATION_TYPE", cfg.Int("SIMULATION_TYPE"))
	d.SetInt("NOISE_TOMOGRAPHY", cfg.Int("NOISE_TOMOGRAPHY"))
	d.SetBool("SAVE_FORWARD", cfg.Bool("SAVE_FORWARD"))
	d.Blank()
	d.Comment("number of chunks (1, 2, 3, or 6)")
	d.SetInt("NCHUNKS", cfg.Int("NCHUNKS"))
	d.Blank()
	d.Comment("angular width of the first chunk and its center, ignored when NCHUNKS = 6")
	d.SetFloat("ANGULAR_WIDTH_XI_IN_DEGREES", cfg.Float("ANGULAR_WIDTH_XI_IN_DEGREES"))
	d.SetFloat("ANGULAR_WIDTH_ETA_IN_DEGREES", cfg.Float("ANGULAR_WIDTH_ETA_IN_DEGREES"))
	d.SetFloat("CENTER_LATITUDE_IN_DEGREES", cfg.Float("CENTER_LATITUDE_IN_DEGREES"))
	d.SetFloat("CENTER_LONGITUDE_IN_DEGREES", cfg.Float("CENTER_LONGITUDE_IN_DEGREES"))
	d.SetFloat("GAMMA_ROTATION_AZIMUTH", cfg.Float("GAMMA_ROTATION_AZIMUTH"))
	d.Blank()
	d.Comment("number of elements at the surface along the two sides of the first chunk")
	d.SetInt("NEX_XI", cfg.Int("NEX_XI"))
	d.SetInt("NEX_ETA", cfg.Int("NEX_ETA"))
	d.Blank()
	d.Comment("number of MPI processors along the two sides of the first chunk")
	d.SetInt("NPROC_XI", cfg.Int("NPROC_XI"))
	d.SetInt("NPROC_ETA", cfg.Int("NPROC_ETA"))
	d.Blank()
	d.Comment("earth model")
	d.Set("MODEL", cfg.String("MODEL"))
	d.Blank()
	d.Comment("parameters describing the earth model")
	d.SetBool("OCEANS", cfg.Bool("OCEANS"))
	d.SetBool("ELLIPTICITY", cfg.Bool("ELLIPTICITY"))
	d.SetBool("TOPOGRAPHY", cfg.Bool("TOPOGRAPHY"))
	d.SetBool("GRAVITY", cfg.Bool("GRAVITY"))
	d.SetBool("ROTATION", cfg.Bool("ROTATION"))
	d.SetBool("ATTENUATION", cfg.Bool("ATTENUATION"))
	d.Blank()
	d.Comment("absorbing boundary conditions for a regional simulation")
	d.SetBool("ABSORBING_CONDITIONS", cfg.Bool("ABSORBING_CONDITIONS"))
	d.Blank()
	d.Comment("record length in minutes")
	d.SetFloat("RECORD_LENGTH_IN_MINUTES", cfg.Float("RECORD_LENGTH_IN_MINUTES"))
	d.Blank()
	d.Comment("attenuation storage and undo flags")
	d.SetBool("ATTENUATION_1D_WITH_3D_STORAGE", cfg.Bool("ATTENUATION_1D_WITH_3D_STORAGE"))
	d.SetBool("PARTIAL_PHYS_DISPERSION_ONLY", cfg.Bool("PARTIAL_PHYS_DISPERSION_ONLY"))
	d.SetBool("UNDO_ATTENUATION", cfg.Bool("UNDO_ATTENUATION"))
	d.SetInt("NT_DUMP_ATTENUATION", cfg.Int("NT_DUMP_ATTENUATION"))
	d.SetBool("EXACT_MASS_MATRIX_FOR_ROTATION", cfg.Bool("EXACT_MASS_MATRIX_FOR_ROTATION"))
	d.Blank()
	d.Comment("LDDRK high-order time scheme instead of Newmark")
	d.SetBool("USE_LDDRK", cfg.Bool("USE_LDDRK"))
	d.SetBool("INCREASE_CFL_FOR_LDDRK", cfg.Bool("INCREASE_CFL_FOR_LDDRK"))
	d.SetFloat("RATIO_BY_WHICH_TO_INCREASE_IT", cfg.Float("RATIO_BY_WHICH_TO_INCREASE_IT"))
	d.Blank()
	d.Comment("movie output")
	d.SetBool("MOVIE_SURFACE", cfg.Bool("MOVIE_SURFACE"))
	d.SetBool("MOVIE_VOLUME", cfg.Bool("MOVIE_VOLUME"))
	d.SetBool("MOVIE_COARSE", cfg.Bool("MOVIE_COARSE"))
	d.SetInt("NTSTEP_BETWEEN_FRAMES", cfg.Int("NTSTEP_BETWEEN_FRAMES"))
	d.SetFloat("HDUR_MOVIE", cfg.Float("HDUR_MOVIE"))
	d.Blank()
	d.Comment("movie volume bounds and frame window")
	d.SetInt("MOVIE_VOLUME_TYPE", cfg.Int("MOVIE_VOLUME_TYPE"))
	d.SetFloat("MOVIE_TOP_KM", cfg.Float("MOVIE_TOP_KM"))
	d.SetFloat("MOVIE_BOTTOM_KM", cfg.Float("MOVIE_BOTTOM_KM"))
	d.SetFloat("MOVIE_WEST_DEG", cfg.Float("MOVIE_WEST_DEG"))
	d.SetFloat("MOVIE_EAST_DEG", cfg.Float("MOVIE_EAST_DEG"))
	d.SetFloat("MOVIE_NORTH_DEG", cfg.Float("MOVIE_NORTH_DEG"))
	d.SetFloat("MOVIE_SOUTH_DEG", cfg.Float("MOVIE_SOUTH_DEG"))
	d.SetInt("MOVIE_START", cfg.Int("MOVIE_START"))
	d.SetInt("MOVIE_STOP", cfg.Int("MOVIE_STOP"))
	d.Blank()
	d.Comment("save mesh files to check the mesh")
	d.SetBool("SAVE_MESH_FILES", cfg.Bool("SAVE_MESH_FILES"))
	d.Blank()
	d.Comment("restart files")
	d.SetInt("NUMBER_OF_RUNS", cfg.Int("NUMBER_OF_RUNS"))
	d.SetInt("NUMBER_OF_THIS_RUN", cfg.Int("NUMBER_OF_THIS_RUN"))
	d.Blank()
	d.Comment("paths of the local database and scratch files on each node")
	d.Set("LOCAL_PATH", cfg.String("LOCAL_PATH"))
	d.Set("LOCAL_TMP_PATH", cfg.String("LOCAL_TMP_PATH"))
	d.Blank()
	d.SetInt("NTSTEP_BETWEEN_OUTPUT_INFO", cfg.Int("NTSTEP_BETWEEN_OUTPUT_INFO"))
	d.SetInt("NTSTEP_BETWEEN_OUTPUT_SEISMOS", cfg.Int("NTSTEP_BETWEEN_OUTPUT_SEISMOS"))
	d.SetInt("NTSTEP_BETWEEN_READ_ADJSRC", cfg.Int("NTSTEP_BETWEEN_READ_ADJSRC"))
	d.Blank()
	d.Comment("seismogram output")
	d.SetBool("OUTPUT_SEISMOS_ASCII_TEXT", seismosASCII)
	d.SetBool("OUTPUT_SEISMOS_SAC_ALPHANUM", seismosSACAlphanum)
	d.SetBool("OUTPUT_SEISMOS_SAC_BINARY", seismosSACBinary)
	d.SetBool("OUTPUT_SEISMOS_ASDF", seismosASDF)
	d.SetBool("ROTATE_SEISMOGRAMS_RT", cfg.Bool("ROTATE_SEISMOGRAMS_RT"))
	d.SetBool("WRITE_SEISMOGRAMS_BY_MASTER", cfg.Bool("WRITE_SEISMOGRAMS_BY_MASTER"))
	d.SetBool("SAVE_ALL_SEISMOS_IN_ONE_FILE", cfg.Bool("SAVE_ALL_SEISMOS_IN_ONE_FILE"))
	d.SetBool("USE_BINARY_FOR_LARGE_FILE", cfg.Bool("USE_BINARY_FOR_LARGE_FILE"))
	d.SetBool("RECEIVERS_CAN_BE_BURIED", cfg.Bool("RECEIVERS_CAN_BE_BURIED"))
	d.SetBool("PRINT_SOURCE_TIME_FUNCTION", cfg.Bool("PRINT_SOURCE_TIME_FUNCTION"))
	d.Blank()
	d.Comment("adjoint kernel output")
	d.SetBool("ANISOTROPIC_KL", cfg.Bool("ANISOTROPIC_KL"))
	d.SetBool("SAVE_TRANSVERSE_KL_ONLY", cfg.Bool("SAVE_TRANSVERSE_KL_ONLY"))
	d.SetBool("APPROXIMATE_HESS_KL", cfg.Bool("APPROXIMATE_HESS_KL"))
	d.SetBool("USE_FULL_TISO_MANTLE", cfg.Bool("USE_FULL_TISO_MANTLE"))
	d.SetBool("SAVE_SOURCE_MASK", cfg.Bool("SAVE_SOURCE_MASK"))
	d.SetBool("SAVE_REGULAR_KL", cfg.Bool("SAVE_REGULAR_KL"))
	d.Blank()
	d.Comment("set to true to use GPUs")
	d.SetBool("GPU_MODE", cfg.Bool("GPU_MODE"))

	return render.OutputSet{
		"Par_file":    d.String(),
		"CMTSOLUTION": cmtSolution(events[0]),
		"STATIONS":    stationsFile(stations),
	}, nil
}
