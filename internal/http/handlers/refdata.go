package handlers

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "stationmap/internal/db"
)

// The band, mode and station-type listings back the public submission
// forms, so none of them require a session.

func ListBands(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		bands, err := dbpkg.GetAllBands(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, bands)
	}
}

func ListModes(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		modes, err := dbpkg.GetAllModes(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, modes)
	}
}

func ListStationTypes(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		types, err := dbpkg.GetAllPermanentStationTypes(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, types)
	}
}
