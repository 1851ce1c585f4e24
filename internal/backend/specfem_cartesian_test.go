package backend

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/wavedeck/internal/domain"
	"github.com/geoforge/wavedeck/internal/render"
)

func turkeyEvent() domain.Event {
	return domain.Event{
		Latitude:   41.0,
		Longitude:  33.0,
		DepthInKM:  10.0,
		OriginTime: time.Date(2012, 4, 12, 7, 15, 48, 500000000, time.UTC),
		Tensor:     domain.MomentTensor{Mrr: 1e16, Mtt: 1e16, Mpp: 1e16},
	}
}

func turkeyStations() []domain.Station {
	return []domain.Station{
		{ID: "KO.ADVT", Latitude: 41.0, Longitude: 33.1234, ElevationInM: 10.0},
		{ID: "KO.AFSR", Latitude: 41.25, Longitude: 33.225, ElevationInM: 220.0, LocalDepthInM: 2.0},
	}
}

func cartesianConfig() map[string]any {
	return map[string]any{
		"NPROC":           16,
		"NSTEP":           4000,
		"DT":              0.05,
		"SIMULATION_TYPE": 1,
	}
}

func renderCartesian(t *testing.T, cfg map[string]any, events []domain.Event, stations []domain.Station) render.OutputSet {
	t.Helper()
	b := SpecfemCartesian()
	resolved, err := b.Schema.Resolve(b.Name, cfg)
	require.NoError(t, err)
	files, err := b.Render(resolved, events, stations)
	require.NoError(t, err)
	return files
}

func TestSpecfemCartesianFileSet(t *testing.T) {
	files := renderCartesian(t, cartesianConfig(), []domain.Event{turkeyEvent()}, turkeyStations())
	assert.Equal(t, []string{"CMTSOLUTION", "Par_file", "STATIONS"}, files.Names())
}

func TestSpecfemCartesianCMTSolution(t *testing.T) {
	files := renderCartesian(t, cartesianConfig(), []domain.Event{turkeyEvent()}, nil)

	want := "PDE 2012 4 12 7 15 48.50 41.00000 33.00000 10.00000 4.7 4.7 2012-04-12T07:15:48.500000Z_4.7\n" +
		"event name:      0000000\n" +
		"time shift:       0.0000\n" +
		"half duration:    0.0000\n" +
		"latitude:       41.00000\n" +
		"longitude:      33.00000\n" +
		"depth:         10.00000\n" +
		"Mrr:         1e+23\n" +
		"Mtt:         1e+23\n" +
		"Mpp:         1e+23\n" +
		"Mrt:         0\n" +
		"Mrp:         0\n" +
		"Mtp:         0\n"
	assert.Equal(t, want, files["CMTSOLUTION"])
}

func TestSpecfemCartesianStations(t *testing.T) {
	files := renderCartesian(t, cartesianConfig(), []domain.Event{turkeyEvent()}, turkeyStations())

	want := "ADVT KO 41.00000 33.12340 10.0 0.0\n" +
		"AFSR KO 41.25000 33.22500 220.0 2.0\n"
	assert.Equal(t, want, files["STATIONS"])
}

func TestSpecfemCartesianParFile(t *testing.T) {
	files := renderCartesian(t, cartesianConfig(), []domain.Event{turkeyEvent()}, nil)
	par := files["Par_file"]

	for _, line := range []string{
		"SIMULATION_TYPE                 = 1",
		"NPROC                           = 16",
		"NSTEP                           = 4000",
		"DT                              = 0.05",
		"MODEL                           = default",
		"SUPPRESS_UTM_PROJECTION         = .true.",
		"SAVE_FORWARD                    = .false.",
		"OLSEN_ATTENUATION_RATIO         = 0.05",
		"f0_FOR_PML                      = 12.7",
		"TOMOGRAPHY_PATH                 = ../DATA/tomo_files/",
	} {
		assert.Contains(t, par, line+"\n")
	}
	assert.True(t, strings.HasSuffix(par, "\n"))
}

func TestSpecfemCartesianOverrides(t *testing.T) {
	cfg := cartesianConfig()
	cfg["SAVE_FORWARD"] = true
	cfg["MODEL"] = "tomo"
	cfg["UTM_PROJECTION_ZONE"] = "34"

	files := renderCartesian(t, cfg, []domain.Event{turkeyEvent()}, nil)
	assert.Contains(t, files["Par_file"], "SAVE_FORWARD                    = .true.\n")
	assert.Contains(t, files["Par_file"], "MODEL                           = tomo\n")
	assert.Contains(t, files["Par_file"], "UTM_PROJECTION_ZONE             = 34\n")
}

func TestSpecfemCartesianEventCount(t *testing.T) {
	b := SpecfemCartesian()
	resolved, err := b.Schema.Resolve(b.Name, cartesianConfig())
	require.NoError(t, err)

	for _, events := range [][]domain.Event{nil, {turkeyEvent(), turkeyEvent()}} {
		_, err := b.Render(resolved, events, nil)
		require.Error(t, err)

		var count *render.UnsupportedEventCountError
		require.ErrorAs(t, err, &count)
		assert.Equal(t, 1, count.Want)
	}
}

func TestSpecfemCartesianDeterminism(t *testing.T) {
	a := renderCartesian(t, cartesianConfig(), []domain.Event{turkeyEvent()}, turkeyStations())
	b := renderCartesian(t, cartesianConfig(), []domain.Event{turkeyEvent()}, turkeyStations())
	assert.Empty(t, cmp.Diff(a, b))
}

func TestSpecfemCartesianMissingRequired(t *testing.T) {
	b := SpecfemCartesian()
	_, err := b.Schema.Resolve(b.Name, map[string]any{"NPROC": 16})
	require.Error(t, err)

	var missing *render.MissingConfigurationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, b.Name, missing.Format)
}
