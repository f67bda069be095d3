package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/valyala/fasthttp"

	"stationmap/internal/access"
	dbpkg "stationmap/internal/db"
	httpctx "stationmap/internal/http/ctx"
)

// MustUser returns the current user from context, or sends 401 and
// returns (nil, false).
func MustUser(ctx *fasthttp.RequestCtx) (*dbpkg.User, bool) {
	user, ok := httpctx.UserFromCtx(ctx)
	if !ok {
		writeError(ctx, fasthttp.StatusUnauthorized, "not authenticated")
		return nil, false
	}
	return user, true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString("encoding error")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// routeID extracts the {id} path parameter as a uint.
func routeID(ctx *fasthttp.RequestCtx) (uint, bool) {
	idVal := ctx.UserValue("id")
	idStr, ok := idVal.(string)
	if !ok {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid id")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// writeStoreError maps the data layer's typed failures onto HTTP
// statuses.
func writeStoreError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, dbpkg.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	case errors.Is(err, dbpkg.ErrConflict):
		writeError(ctx, fasthttp.StatusConflict, err.Error())
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, "database error")
	}
}

// writeAccessError maps authorization failures onto HTTP statuses. The
// three denial reasons are deliberately the only ones that exist.
func writeAccessError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, access.ErrNotAuthenticated):
		writeError(ctx, fasthttp.StatusUnauthorized, "not authenticated")
	case errors.Is(err, access.ErrSecretMismatch):
		writeError(ctx, fasthttp.StatusForbidden, "edit password does not match")
	default:
		writeError(ctx, fasthttp.StatusForbidden, "not authorized")
	}
}
