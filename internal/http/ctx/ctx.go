package ctx

import (
	"github.com/valyala/fasthttp"

	dbpkg "stationmap/internal/db"
)

const (
	UserKey  = "user"
	TokenKey = "sessionToken"
)

func SetUser(ctx *fasthttp.RequestCtx, user *dbpkg.User) {
	ctx.SetUserValue(UserKey, user)
}

func UserFromCtx(ctx *fasthttp.RequestCtx) (*dbpkg.User, bool) {
	v := ctx.UserValue(UserKey)
	if v == nil {
		return nil, false
	}
	user, ok := v.(*dbpkg.User)
	return user, ok && user != nil
}

func SetToken(ctx *fasthttp.RequestCtx, token string) {
	ctx.SetUserValue(TokenKey, token)
}

func TokenFromCtx(ctx *fasthttp.RequestCtx) (string, bool) {
	v := ctx.UserValue(TokenKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
