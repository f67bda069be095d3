package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTemporaryStationGeneratesEditPassword(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	station := &TemporaryStation{
		Callsign:  "GB1ABC",
		ClubName:  "Test Club",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	}
	stationID, err := AddTemporaryStation(db, station, nil, nil)
	require.NoError(t, err)

	assert.Len(t, station.EditPassword, 10)
	assert.False(t, station.Approved, "submissions start unapproved")

	stored, err := GetTemporaryStation(db, stationID)
	require.NoError(t, err)
	assert.Equal(t, station.EditPassword, stored.EditPassword)
}

func TestApprovedTemporaryStationFilter(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	pending := makeStation(t, db, "GB1ABC", nil, now, now.Add(time.Hour))
	approvedID := makeStation(t, db, "GB2DEF", nil, now, now.Add(time.Hour))

	yes := true
	require.NoError(t, UpdateTemporaryStation(db, approvedID, TemporaryStationPatch{Approved: &yes}))

	approved, err := GetApprovedTemporaryStations(db)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "GB2DEF", approved[0].Callsign)

	all, err := GetAllTemporaryStations(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_ = pending
}

func TestUpdateTemporaryStationPatchSemantics(t *testing.T) {
	db := newTestDB(t)
	seedRefData(t, db)

	now := time.Now()
	eventID := makeEvent(t, db, "JOTA 2026", now, now.Add(time.Hour))
	stationID := makeStation(t, db, "GB1ABC", &eventID, now, now.Add(time.Hour))

	t.Run("nil fields untouched", func(t *testing.T) {
		notes := "On the air all weekend"
		require.NoError(t, UpdateTemporaryStation(db, stationID, TemporaryStationPatch{Notes: &notes}))

		station, err := GetTemporaryStation(db, stationID)
		require.NoError(t, err)
		assert.Equal(t, "GB1ABC", station.Callsign)
		assert.Equal(t, notes, station.Notes)
		require.NotNil(t, station.EventID)
		assert.Equal(t, eventID, *station.EventID)
	})

	t.Run("event id zero detaches", func(t *testing.T) {
		zero := uint(0)
		require.NoError(t, UpdateTemporaryStation(db, stationID, TemporaryStationPatch{EventID: &zero}))

		station, err := GetTemporaryStation(db, stationID)
		require.NoError(t, err)
		assert.Nil(t, station.EventID)
	})

	t.Run("band replace and clear", func(t *testing.T) {
		bands, err := GetAllBands(db)
		require.NoError(t, err)

		require.NoError(t, UpdateTemporaryStation(db, stationID, TemporaryStationPatch{BandIDs: []uint{bands[0].ID}}))
		station, err := GetTemporaryStation(db, stationID)
		require.NoError(t, err)
		assert.Len(t, station.Bands, 1)

		require.NoError(t, UpdateTemporaryStation(db, stationID, TemporaryStationPatch{BandIDs: []uint{}}))
		station, err = GetTemporaryStation(db, stationID)
		require.NoError(t, err)
		assert.Empty(t, station.Bands)
	})

	t.Run("edit password rotates but never clears", func(t *testing.T) {
		rotated := "Ab3456789Z"
		require.NoError(t, UpdateTemporaryStation(db, stationID, TemporaryStationPatch{EditPassword: &rotated}))

		station, err := GetTemporaryStation(db, stationID)
		require.NoError(t, err)
		assert.Equal(t, rotated, station.EditPassword)

		empty := ""
		err = UpdateTemporaryStation(db, stationID, TemporaryStationPatch{EditPassword: &empty})
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestUpdateTemporaryStationNotFound(t *testing.T) {
	db := newTestDB(t)

	notes := "x"
	err := UpdateTemporaryStation(db, 42, TemporaryStationPatch{Notes: &notes})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurgeExpiredTemporaryStationsLeavesEvents(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	// The event itself is over, but only the station sweep runs here.
	eventID := makeEvent(t, db, "Last Weekend", now.Add(-72*time.Hour), now.Add(-24*time.Hour))

	expired := makeStation(t, db, "GB1ABC", &eventID, now.Add(-72*time.Hour), now.Add(-24*time.Hour))
	active := makeStation(t, db, "GB2DEF", nil, now, now.Add(24*time.Hour))

	require.NoError(t, PurgeExpiredTemporaryStations(db))

	_, err := GetTemporaryStation(db, expired)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetTemporaryStation(db, active)
	assert.NoError(t, err)

	_, err = GetEvent(db, eventID)
	assert.NoError(t, err, "the station sweep must not touch events")
}

func TestDeleteTemporaryStationClearsAssociations(t *testing.T) {
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
	stationID, err := AddTemporaryStation(db, station, []uint{bands[0].ID}, nil)
	require.NoError(t, err)

	require.NoError(t, DeleteTemporaryStation(db, stationID))

	var count int64
	require.NoError(t, db.Table("temporary_station_bands").
		Where("temporary_station_id = ?", stationID).Count(&count).Error)
	assert.Zero(t, count, "join rows must not outlive the station")
}
