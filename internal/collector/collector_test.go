package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoforge/wavedeck/internal/domain"
)

var testOrigin = time.Date(2012, 4, 12, 7, 15, 48, 500000000, time.UTC)

func testEvent(id string) domain.Event {
	return domain.Event{
		Latitude:   41.0,
		Longitude:  33.0,
		DepthInKM:  10.0,
		OriginTime: testOrigin,
		Tensor:     domain.MomentTensor{Mrr: 1e16, Mtt: 1e16, Mpp: 1e16},
		EventID:    id,
	}
}

func TestEventDeduplication(t *testing.T) {
	c := New()
	c.AddEvent(testEvent("a"))
	c.AddEvent(testEvent("a"))
	require.Len(t, c.Events(), 1)

	// A differing field makes it a distinct event.
	other := testEvent("a")
	other.DepthInKM = 12.0
	c.AddEvent(other)
	assert.Len(t, c.Events(), 2)
}

func TestEventInsertionOrder(t *testing.T) {
	c := New()
	c.AddEvent(testEvent("z"))
	c.AddEvent(testEvent("a"))
	c.AddEvent(testEvent("m"))

	events := c.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "z", events[0].EventID)
	assert.Equal(t, "a", events[1].EventID)
	assert.Equal(t, "m", events[2].EventID)
}

func TestStationLastWins(t *testing.T) {
	c := New()
	c.AddStation(domain.Station{ID: "BW.FURT", Latitude: 48.0})
	c.AddStation(domain.Station{ID: "BW.FURT", Latitude: 48.16})

	stations := c.Stations()
	require.Len(t, stations, 1)
	assert.Equal(t, 48.16, stations[0].Latitude)
}

func TestStationsSortedByID(t *testing.T) {
	c := New()
	c.AddStation(domain.Station{ID: "KO.ADVT"})
	c.AddStation(domain.Station{ID: "BW.FURT"})
	c.AddStation(domain.Station{ID: "HT.LIT"})

	ids := make([]string, 0, 3)
	for _, st := range c.Stations() {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{"BW.FURT", "HT.LIT", "KO.ADVT"}, ids)
}

func TestEventFilter(t *testing.T) {
	c := New()
	c.AddEvent(testEvent("smi:local/evt1"))
	c.AddEvent(testEvent("smi:local/evt2"))
	c.AddEvent(testEvent("")) // anonymous events are dropped while filtering

	c.SetEventFilter([]string{"SMI:LOCAL/EVT2"})
	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "smi:local/evt2", events[0].EventID)

	c.SetEventFilter(nil)
	assert.Len(t, c.Events(), 3)
}

func TestStationFilter(t *testing.T) {
	c := New()
	c.AddStation(domain.Station{ID: "HT.LIT"})
	c.AddStation(domain.Station{ID: "HT.XAN"})
	c.AddStation(domain.Station{ID: "KO.ADVT"})

	c.SetStationFilter([]string{"HT.*"})
	require.Len(t, c.Stations(), 2)

	c.SetStationFilter([]string{"*.ADVT", "HT.LIT"})
	ids := []string{}
	for _, st := range c.Stations() {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{"HT.LIT", "KO.ADVT"}, ids)
}

func TestAddEventsDocument(t *testing.T) {
	t.Run("JSON list", func(t *testing.T) {
		c := New()
		err := c.AddEventsDocument([]byte(`[{
			"latitude": 41.0, "longitude": 33.0, "depth_in_km": 10.0,
			"origin_time": "2012-04-12T07:15:48.500000Z",
			"m_rr": 1e16, "m_tt": 1e16, "m_pp": 1e16,
			"m_rt": 0, "m_rp": 0, "m_tp": 0
		}]`))
		require.NoError(t, err)
		assert.Len(t, c.Events(), 1)
	})

	t.Run("single YAML document", func(t *testing.T) {
		c := New()
		err := c.AddEventsDocument([]byte(`
latitude: 41.0
longitude: 33.0
depth_in_km: 10.0
origin_time: "2012-04-12T07:15:48.500000Z"
m_rr: 1.0e+16
m_tt: 1.0e+16
m_pp: 1.0e+16
m_rt: 0.0
m_rp: 0.0
m_tp: 0.0
`))
		require.NoError(t, err)
		assert.Len(t, c.Events(), 1)
	})

	t.Run("one invalid record aborts the batch", func(t *testing.T) {
		c := New()
		err := c.AddEventsDocument([]byte(`[
			{"latitude": 41.0, "longitude": 33.0, "depth_in_km": 10.0,
			 "origin_time": "2012-04-12T07:15:48.500000Z",
			 "m_rr": 1e16, "m_tt": 1e16, "m_pp": 1e16,
			 "m_rt": 0, "m_rp": 0, "m_tp": 0},
			{"latitude": 10.0}
		]`))
		require.Error(t, err)

		var invalid *domain.InvalidRecordError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestAddStationsDocument(t *testing.T) {
	c := New()
	err := c.AddStationsDocument([]byte(`[
		{"id": "KO.ADVT", "latitude": 41.0, "longitude": 33.1234, "elevation_in_m": 10},
		{"id": "BW.FURT", "latitude": 48.16, "longitude": 11.28, "elevation_in_m": 565, "local_depth_in_m": 2}
	]`))
	require.NoError(t, err)
	require.Len(t, c.Stations(), 2)
}

func TestAddEventsURL(t *testing.T) {
	body := `[{
		"latitude": 41.0, "longitude": 33.0, "depth_in_km": 10.0,
		"origin_time": "2012-04-12T07:15:48.500000Z",
		"m_rr": 1e16, "m_tt": 1e16, "m_pp": 1e16,
		"m_rt": 0, "m_rp": 0, "m_tp": 0
	}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}))
	defer srv.Close()

	c := New()
	require.NoError(t, c.AddEventsURL(context.Background(), srv.URL))
	assert.Len(t, c.Events(), 1)

	t.Run("non-200 is an error", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer bad.Close()

		err := c.AddEventsURL(context.Background(), bad.URL)
		assert.Error(t, err)
	})
}
