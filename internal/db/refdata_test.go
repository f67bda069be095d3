package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPermanentStationTypeWithStations(t *testing.T) {
	db := newTestDB(t)
	seedRefData(t, db)

	school, err := GetPermanentStationTypeByName(db, "School")
	require.NoError(t, err)

	_, err = AddPermanentStation(db, &PermanentStation{Callsign: "M0AAA", ClubName: "A", TypeID: &school.ID})
	require.NoError(t, err)

	loaded, err := GetPermanentStationType(db, school.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Stations, 1)
	assert.Equal(t, "M0AAA", loaded.Stations[0].Callsign)

	_, err = GetPermanentStationType(db, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownBandIDsAreDropped(t *testing.T) {
	db := newTestDB(t)
	seedRefData(t, db)

	bands, err := GetAllBands(db)
	require.NoError(t, err)

	now := time.Now()
	station := &TemporaryStation{
		Callsign:  "GB1ABC",
		ClubName:  "Test Club",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	}
	stationID, err := AddTemporaryStation(db, station, []uint{bands[0].ID, 9999}, []uint{8888})
	require.NoError(t, err, "unknown ids must not fail the whole mutation")

	stored, err := GetTemporaryStation(db, stationID)
	require.NoError(t, err)
	assert.Len(t, stored.Bands, 1)
	assert.Empty(t, stored.Modes)
}

func TestGetTemporaryStationsByEvent(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	eventID := makeEvent(t, db, "JOTA 2026", now, now.Add(time.Hour))
	otherID := makeEvent(t, db, "Field Day", now, now.Add(time.Hour))

	makeStation(t, db, "GB1ABC", &eventID, now, now.Add(time.Hour))
	makeStation(t, db, "GB2DEF", &otherID, now, now.Add(time.Hour))
	makeStation(t, db, "GB3GHI", nil, now, now.Add(time.Hour))

	stations, err := GetTemporaryStationsByEvent(db, eventID)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "GB1ABC", stations[0].Callsign)
}
