package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndVerifySession(t *testing.T) {
	db := newTestDB(t)

	userID, err := AddUser(db, "alice", "s3cret", nil, false)
	require.NoError(t, err)

	token, err := CreateSession(db, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok := VerifySessionToken(db, token)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok = VerifySessionToken(db, "not-a-token")
	assert.False(t, ok)
}

func TestExpiredSessionDoesNotVerify(t *testing.T) {
	db := newTestDB(t)

	userID, err := AddUser(db, "alice", "s3cret", nil, false)
	require.NoError(t, err)

	token, err := CreateSession(db, userID, -time.Minute)
	require.NoError(t, err)

	_, ok := VerifySessionToken(db, token)
	assert.False(t, ok, "expired session must not verify even before any purge runs")
}

func TestPurgeExpiredSessions(t *testing.T) {
	db := newTestDB(t)

	userID, err := AddUser(db, "alice", "s3cret", nil, false)
	require.NoError(t, err)

	expired, err := CreateSession(db, userID, -time.Minute)
	require.NoError(t, err)
	live, err := CreateSession(db, userID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, PurgeExpiredSessions(db))

	var count int64
	require.NoError(t, db.Model(&Session{}).Where("token = ?", expired).Count(&count).Error)
	assert.Zero(t, count, "expired session row must be gone")

	_, ok := VerifySessionToken(db, live)
	assert.True(t, ok, "live session must survive the purge")

	// Running the purge again is a no-op.
	require.NoError(t, PurgeExpiredSessions(db))
	_, ok = VerifySessionToken(db, live)
	assert.True(t, ok)
}

func TestDeleteSessionByToken(t *testing.T) {
	db := newTestDB(t)

	userID, err := AddUser(db, "alice", "s3cret", nil, false)
	require.NoError(t, err)

	token, err := CreateSession(db, userID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, DeleteSessionByToken(db, token))
	_, ok := VerifySessionToken(db, token)
	assert.False(t, ok)

	require.NoError(t, DeleteSessionByToken(db, "never-issued"))
}

func TestCreateSessionPurgesInline(t *testing.T) {
	db := newTestDB(t)

	userID, err := AddUser(db, "alice", "s3cret", nil, false)
	require.NoError(t, err)

	_, err = CreateSession(db, userID, -time.Minute)
	require.NoError(t, err)

	// The next login sweeps the stale row out before creating its own.
	_, err = CreateSession(db, userID, time.Hour)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&Session{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
