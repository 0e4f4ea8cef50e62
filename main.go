package main

import (
	"os"
	"time"

	"listing-reservations-server/routes"
	"listing-reservations-server/services"
	"listing-reservations-server/storage"
	"listing-reservations-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	// Event publishing is optional; the reservation flow works without it.
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		rabbit, err := services.NewRabbit(amqpURL, "reservations")
		if err != nil {
			log.Error().Err(err).Msg("could not connect to broker, events disabled")
		} else {
			services.Events = rabbit
			defer rabbit.Close()
		}
	}

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", routes.RegisterRenter)
		auth.Get("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
	}

	listings := app.Party("/api/listings", accessTokenVerifierMiddleware)
	{
		listings.Post("/", utils.HostOnlyMiddleware, routes.CreateListing)
		listings.Get("/{id:uint}", routes.GetListing)
		listings.Post("/{id:uint}/fees", utils.HostOnlyMiddleware, routes.AddListingFee)
		listings.Get("/{id:uint}/fees", routes.GetListingFees)
		listings.Post("/{id:uint}/quote", routes.QuoteListing)
		listings.Get("/{id:uint}/reservations", routes.GetReservationsByListingID)
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware)
	{
		reservations.Post("/", routes.CreateReservation)
		reservations.Get("/{id:uint}", routes.GetReservation)
	}

	renters := app.Party("/api/renters", accessTokenVerifierMiddleware)
	{
		renters.Get("/{id}/reservations", utils.RenterIDMiddleware, routes.GetRenterReservations)
	}

	app.Get("/metrics", iris.FromStd(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	app.Listen(":" + port)
}
