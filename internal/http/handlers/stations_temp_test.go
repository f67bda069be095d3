package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	dbpkg "stationmap/internal/db"
	httpctx "stationmap/internal/http/ctx"
)

func TestUpdateTemporaryStationAdminApproves(t *testing.T) {
	db := newTestDB(t)
	station := addTestTemporaryStation(t, db)

	ctx := postCtx(t, station.ID, map[string]any{"approved": true})
	httpctx.SetUser(ctx, &dbpkg.User{ID: 1, Username: "admin"})

	UpdateTemporaryStation(db)(ctx)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	stored, err := dbpkg.GetTemporaryStation(db, station.ID)
	require.NoError(t, err)
	assert.True(t, stored.Approved)
}

func TestUpdateTemporaryStationRequiresSession(t *testing.T) {
	db := newTestDB(t)
	station := addTestTemporaryStation(t, db)

	ctx := postCtx(t, station.ID, map[string]any{"approved": true})
	UpdateTemporaryStation(db)(ctx)
	assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())

	stored, err := dbpkg.GetTemporaryStation(db, station.ID)
	require.NoError(t, err)
	assert.False(t, stored.Approved)
}
