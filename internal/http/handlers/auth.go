package handlers

import (
	"errors"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"stationmap/internal/config"
	dbpkg "stationmap/internal/db"
	httpctx "stationmap/internal/http/ctx"
	"stationmap/internal/http/middleware"
)

// Login verifies the posted credentials and, on success, issues a
// session token in an HTTP-only cookie. Unknown username and wrong
// password produce the same response.
func Login(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		username := string(ctx.PostArgs().Peek("username"))
		password := string(ctx.PostArgs().Peek("password"))

		userID, err := dbpkg.VerifyUser(db, username, password)
		if err != nil {
			if errors.Is(err, dbpkg.ErrInvalidCredentials) {
				loginsTotal.WithLabelValues("failed").Inc()
				writeError(ctx, fasthttp.StatusUnauthorized, "invalid username or password")
				return
			}
			writeError(ctx, fasthttp.StatusInternalServerError, "database error")
			return
		}

		token, err := dbpkg.CreateSession(db, userID, cfg.SessionTTL)
		if err != nil {
			writeError(ctx, fasthttp.StatusInternalServerError, "failed to create session")
			return
		}
		loginsTotal.WithLabelValues("ok").Inc()

		var c fasthttp.Cookie
		c.SetKey(middleware.SessionCookie)
		c.SetValue(token)
		c.SetPath("/")
		c.SetHTTPOnly(true)
		c.SetMaxAge(int(cfg.SessionTTL.Seconds()))
		ctx.Response.Header.SetCookie(&c)

		writeJSON(ctx, fasthttp.StatusOK, map[string]any{
			"user_id":               userID,
			"insecure_default_user": dbpkg.IsInsecureUserPresent(db),
		})
	}
}

// Logout revokes the caller's session and clears its cookie. It runs
// behind the session middleware, which has already resolved the token.
func Logout(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if token, ok := httpctx.TokenFromCtx(ctx); ok {
			if err := dbpkg.DeleteSessionByToken(db, token); err != nil {
				writeError(ctx, fasthttp.StatusInternalServerError, "database error")
				return
			}
		}

		var c fasthttp.Cookie
		c.SetKey(middleware.SessionCookie)
		c.SetValue("")
		c.SetPath("/")
		c.SetMaxAge(-1)
		ctx.Response.Header.SetCookie(&c)
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "logged out"})
	}
}

// UpdateDetails lets the logged-in user change their own username,
// email and, if the old password checks out, their password.
func UpdateDetails(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		user, ok := MustUser(ctx)
		if !ok {
			return
		}

		username := string(ctx.PostArgs().Peek("username"))
		email := string(ctx.PostArgs().Peek("email"))
		oldPassword := string(ctx.PostArgs().Peek("old_password"))
		newPassword := string(ctx.PostArgs().Peek("new_password"))
		confirm := string(ctx.PostArgs().Peek("new_password_2"))

		if username != "" {
			if err := dbpkg.UpdateUser(db, user.ID, dbpkg.UserPatch{Username: &username}); err != nil {
				writeStoreError(ctx, err)
				return
			}
		}
		if email != "" {
			if err := dbpkg.UpdateUser(db, user.ID, dbpkg.UserPatch{Email: &email}); err != nil {
				writeStoreError(ctx, err)
				return
			}
		}

		if oldPassword != "" && newPassword != "" {
			if newPassword != confirm {
				writeError(ctx, fasthttp.StatusBadRequest, "new password entries were not the same")
				return
			}
			current, err := dbpkg.GetUser(db, user.ID)
			if err != nil {
				writeStoreError(ctx, err)
				return
			}
			if _, err := dbpkg.VerifyUser(db, current.Username, oldPassword); err != nil {
				writeError(ctx, fasthttp.StatusUnauthorized, "old password was incorrect")
				return
			}
			if err := dbpkg.SetPassword(db, user.ID, newPassword); err != nil {
				writeStoreError(ctx, err)
				return
			}
		}

		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "updated"})
	}
}

// SecurityStatus reports whether the seeded admin/password account is
// still usable, so admin pages can show a warning banner.
func SecurityStatus(db *gorm.DB) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := MustUser(ctx); !ok {
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]bool{
			"insecure_default_user": dbpkg.IsInsecureUserPresent(db),
		})
	}
}
