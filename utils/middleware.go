package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func RenterIDMiddleware(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	claims := jwt.Get(ctx).(*AccessToken)

	if claims.ID != id {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}
	ctx.Next()
}

// RenterIDFromTokenMiddleware extracts the renter ID from the JWT and stores it
// in the context. Use this for routes that don't carry {id} in the URL.
func RenterIDFromTokenMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("renterID", claims.ID)
	ctx.Next()
}

// HostOnlyMiddleware ensures the requester manages listings
func HostOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	role := claims.Role
	if role != "host" && role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "forbidden", "message": "host access required"})
		return
	}
	ctx.Values().Set("renterID", claims.ID)
	ctx.Next()
}
