package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"stationmap/internal/access"
	dbpkg "stationmap/internal/db"
)

// ListUsers returns every user account. Super-admin only.
func ListUsers(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		actor, ok := MustUser(ctx)
		if !ok {
			return
		}
		if err := access.CanListUsers(actor); err != nil {
			writeAccessError(ctx, err)
			return
		}

		users, err := dbpkg.GetAllUsers(db)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, users)
	}
}

type createUserRequest struct {
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	Email      *string `json:"email"`
	SuperAdmin bool    `json:"super_admin"`
}

// CreateUser creates a new admin account. Super-admin only.
func CreateUser(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		actor, ok := MustUser(ctx)
		if !ok {
			return
		}
		if err := access.CanCreateUser(actor); err != nil {
			writeAccessError(ctx, err)
			return
		}

		var req createUserRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "username and password required")
			return
		}

		userID, err := dbpkg.AddUser(db, req.Username, req.Password, req.Email, req.SuperAdmin)
		if err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusCreated, map[string]uint{"id": userID})
	}
}

// UpdateUser applies a partial update to a user account. Users may edit
// their own details; editing anyone else, or touching super_admin,
// falls under the access rules.
func UpdateUser(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		actor, ok := MustUser(ctx)
		if !ok {
			return
		}
		targetID, ok := routeID(ctx)
		if !ok {
			return
		}

		var patch dbpkg.UserPatch
		if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := access.CanUpdateUser(actor, targetID, patch); err != nil {
			writeAccessError(ctx, err)
			return
		}

		if err := dbpkg.UpdateUser(db, targetID, patch); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// DeleteUser removes a user account and all of its sessions.
func DeleteUser(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		actor, ok := MustUser(ctx)
		if !ok {
			return
		}
		targetID, ok := routeID(ctx)
		if !ok {
			return
		}

		if err := access.CanDeleteUser(actor, targetID); err != nil {
			writeAccessError(ctx, err)
			return
		}

		if err := dbpkg.DeleteUser(db, targetID); err != nil {
			writeStoreError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "deleted"})
	}
}
