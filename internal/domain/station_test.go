package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStationRecord() StationRecord {
	return StationRecord{
		ID:           strPtr("KO.ADVT"),
		Latitude:     numPtr(41.0),
		Longitude:    numPtr(33.1234),
		ElevationInM: numPtr(10.0),
	}
}

func TestStationRecordValidation(t *testing.T) {
	t.Run("complete record", func(t *testing.T) {
		st, err := validStationRecord().Station()
		require.NoError(t, err)

		assert.Equal(t, "KO.ADVT", st.ID)
		assert.Equal(t, 41.0, st.Latitude)
		assert.Equal(t, 33.1234, st.Longitude)
		assert.Equal(t, 10.0, st.ElevationInM)
		assert.Equal(t, 0.0, st.LocalDepthInM, "burial depth defaults to 0")
	})

	t.Run("explicit burial depth", func(t *testing.T) {
		rec := validStationRecord()
		rec.LocalDepthInM = numPtr(12.5)
		st, err := rec.Station()
		require.NoError(t, err)
		assert.Equal(t, 12.5, st.LocalDepthInM)
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, mutate := range []func(*StationRecord){
			func(r *StationRecord) { r.ID = nil },
			func(r *StationRecord) { r.ID = strPtr("") },
			func(r *StationRecord) { r.Latitude = nil },
			func(r *StationRecord) { r.Longitude = nil },
			func(r *StationRecord) { r.ElevationInM = nil },
		} {
			rec := validStationRecord()
			mutate(&rec)
			_, err := rec.Station()

			var invalid *InvalidRecordError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, "station", invalid.Kind)
		}
	})
}

func TestStationCodes(t *testing.T) {
	st := Station{ID: "KO.ADVT"}
	assert.Equal(t, "KO", st.NetworkCode())
	assert.Equal(t, "ADVT", st.StationCode())

	// Only the first dot splits network from station.
	st = Station{ID: "IU.ANMO.00"}
	assert.Equal(t, "IU", st.NetworkCode())
	assert.Equal(t, "ANMO.00", st.StationCode())
}
