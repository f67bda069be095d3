package handlers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"stationmap/internal/config"
	dbpkg "stationmap/internal/db"
)

func TestMain(m *testing.M) {
	InitPrometheusMetrics()
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := dbpkg.Connect(&config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	return db
}

// postCtx builds a request context carrying a JSON body, with the {id}
// route parameter set when non-zero.
func postCtx(t *testing.T, id uint, body any) *fasthttp.RequestCtx {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.Header.SetMethod(fasthttp.MethodPost)
	ctx.Request.SetBody(raw)
	if id != 0 {
		ctx.SetUserValue("id", strconv.FormatUint(uint64(id), 10))
	}
	return ctx
}

func addTestTemporaryStation(t *testing.T, db *gorm.DB) *dbpkg.TemporaryStation {
	t.Helper()

	now := time.Now()
	station := &dbpkg.TemporaryStation{
		Callsign:  "GB1ABC",
		ClubName:  "Test Club",
		StartTime: now,
		EndTime:   now.Add(time.Hour),
	}
	_, err := dbpkg.AddTemporaryStation(db, station, nil, nil)
	require.NoError(t, err)
	return station
}

func TestSubmitTemporaryStationStartsUnapproved(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	ctx := postCtx(t, 0, map[string]any{
		"callsign":   "GB1ABC",
		"club_name":  "Test Club",
		"start_time": now.Format(time.RFC3339),
		"end_time":   now.Add(time.Hour).Format(time.RFC3339),
		// A visitor claiming approval in the body changes nothing.
		"approved": true,
	})
	SubmitTemporaryStation(db)(ctx)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())

	var resp struct {
		ID           uint   `json:"id"`
		EditPassword string `json:"edit_password"`
	}
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Len(t, resp.EditPassword, 10)

	station, err := dbpkg.GetTemporaryStation(db, resp.ID)
	require.NoError(t, err)
	assert.False(t, station.Approved)
}

func TestEditTemporaryStationKeepsModerationAdminOnly(t *testing.T) {
	db := newTestDB(t)
	station := addTestTemporaryStation(t, db)
	secret := station.EditPassword

	ctx := postCtx(t, station.ID, map[string]any{
		"edit_password": secret,
		"changes": map[string]any{
			"notes":         "On the air all weekend",
			"approved":      true,
			"edit_password": "Xy1234567Z",
		},
	})
	EditTemporaryStation(db)(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	stored, err := dbpkg.GetTemporaryStation(db, station.ID)
	require.NoError(t, err)
	assert.Equal(t, "On the air all weekend", stored.Notes, "ordinary fields apply")
	assert.False(t, stored.Approved, "the secret grants no say over moderation")
	assert.Equal(t, secret, stored.EditPassword, "the secret cannot rotate itself")
}

func TestEditTemporaryStationWrongSecret(t *testing.T) {
	db := newTestDB(t)
	station := addTestTemporaryStation(t, db)

	ctx := postCtx(t, station.ID, map[string]any{
		"edit_password": "not-the-secret",
		"changes":       map[string]any{"notes": "defaced"},
	})
	EditTemporaryStation(db)(ctx)
	assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())

	stored, err := dbpkg.GetTemporaryStation(db, station.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Notes)
}

func TestEditPermanentStationKeepsModerationAdminOnly(t *testing.T) {
	db := newTestDB(t)

	station := &dbpkg.PermanentStation{Callsign: "M0ABC", ClubName: "Example School ARC"}
	_, err := dbpkg.AddPermanentStation(db, station)
	require.NoError(t, err)
	secret := station.EditPassword

	ctx := postCtx(t, station.ID, map[string]any{
		"edit_password": secret,
		"changes": map[string]any{
			"notes":         "Meets Tuesdays",
			"approved":      true,
			"edit_password": "Xy1234567Z",
		},
	})
	EditPermanentStation(db)(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	stored, err := dbpkg.GetPermanentStation(db, station.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meets Tuesdays", stored.Notes)
	assert.False(t, stored.Approved)
	assert.Equal(t, secret, stored.EditPassword)
}

func TestRemoveTemporaryStationBySecret(t *testing.T) {
	db := newTestDB(t)
	station := addTestTemporaryStation(t, db)

	t.Run("wrong secret is refused", func(t *testing.T) {
		ctx := postCtx(t, station.ID, map[string]any{"edit_password": "nope"})
		RemoveTemporaryStation(db)(ctx)
		assert.Equal(t, fasthttp.StatusForbidden, ctx.Response.StatusCode())

		_, err := dbpkg.GetTemporaryStation(db, station.ID)
		assert.NoError(t, err)
	})

	t.Run("matching secret deletes", func(t *testing.T) {
		ctx := postCtx(t, station.ID, map[string]any{"edit_password": station.EditPassword})
		RemoveTemporaryStation(db)(ctx)
		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

		_, err := dbpkg.GetTemporaryStation(db, station.ID)
		assert.ErrorIs(t, err, dbpkg.ErrNotFound)
	})
}
