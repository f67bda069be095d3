package middleware

import (
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "stationmap/internal/db"
	httpctx "stationmap/internal/http/ctx"
)

// SessionCookie is the cookie carrying the admin session token.
const SessionCookie = "session_token"

// AdminAuth returns middleware that resolves the session token to a
// user and sets it on the context. Requests with no token, an unknown
// token or an expired one all get the same 401.
func AdminAuth(db *gorm.DB) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			cookie := ctx.Request.Header.Cookie(SessionCookie)
			if len(cookie) == 0 {
				unauthenticated(ctx)
				return
			}
			token := string(cookie)

			userID, ok := dbpkg.VerifySessionToken(db, token)
			if !ok {
				unauthenticated(ctx)
				return
			}

			user, err := dbpkg.GetUser(db, userID)
			if err != nil {
				unauthenticated(ctx)
				return
			}

			httpctx.SetToken(ctx, token)
			httpctx.SetUser(ctx, user)
			next(ctx)
		}
	}
}

func unauthenticated(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"error":"not authenticated"}`)
}
