package main

import (
	"log"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"stationmap/internal/config"
	"stationmap/internal/db"
	"stationmap/internal/http/handlers"
	appmw "stationmap/internal/http/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.EnsureDefaultContent(sqlDB); err != nil {
		log.Fatalf("failed to seed default content: %v", err)
	}
	if err := db.EnsureDefaultUser(sqlDB); err != nil {
		log.Fatalf("failed to ensure default user: %v", err)
	}
	if db.IsInsecureUserPresent(sqlDB) {
		log.Printf("warning: default admin/password account is active; change it before going live")
	}

	db.StartHousekeepingWorker(sqlDB, db.HousekeepingInterval)

	handlers.InitPrometheusMetrics()

	r := router.New()

	handler := handlers.RequestLogger(r.Handler)

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	admin := appmw.AdminAuth(sqlDB)

	// Public surface: the map feed, event pages, reference data, and
	// visitor submission and edit-password flows.
	r.GET("/v1/map", handlers.MapData(sqlDB))
	r.GET("/v1/events/{slug}", handlers.PublicEventBySlug(sqlDB))
	r.GET("/v1/bands", handlers.ListBands(sqlDB))
	r.GET("/v1/modes", handlers.ListModes(sqlDB))
	r.GET("/v1/station-types", handlers.ListStationTypes(sqlDB))

	r.POST("/v1/stations/temporary", handlers.SubmitTemporaryStation(sqlDB))
	r.POST("/v1/stations/temporary/{id}/edit", handlers.EditTemporaryStation(sqlDB))
	r.POST("/v1/stations/temporary/{id}/delete", handlers.RemoveTemporaryStation(sqlDB))
	r.POST("/v1/stations/permanent", handlers.SubmitPermanentStation(sqlDB))
	r.POST("/v1/stations/permanent/{id}/edit", handlers.EditPermanentStation(sqlDB))
	r.POST("/v1/stations/permanent/{id}/delete", handlers.RemovePermanentStation(sqlDB))

	// Session endpoints.
	r.POST("/login", handlers.Login(sqlDB, cfg))
	r.POST("/logout", admin(handlers.Logout(sqlDB)))
	r.POST("/admin/details", admin(handlers.UpdateDetails(sqlDB)))
	r.GET("/admin/security-status", admin(handlers.SecurityStatus(sqlDB)))

	// Admin surface.
	r.GET("/admin/users", admin(handlers.ListUsers(sqlDB)))
	r.POST("/admin/users", admin(handlers.CreateUser(sqlDB)))
	r.POST("/admin/users/{id}", admin(handlers.UpdateUser(sqlDB)))
	r.POST("/admin/users/{id}/delete", admin(handlers.DeleteUser(sqlDB)))

	r.GET("/admin/events", admin(handlers.ListEvents(sqlDB)))
	r.POST("/admin/events", admin(handlers.CreateEvent(sqlDB)))
	r.GET("/admin/events/{id}", admin(handlers.GetEvent(sqlDB)))
	r.POST("/admin/events/{id}", admin(handlers.UpdateEvent(sqlDB)))
	r.POST("/admin/events/{id}/delete", admin(handlers.DeleteEvent(sqlDB)))
	r.POST("/admin/events/purge-expired", admin(handlers.PurgeExpiredEvents(sqlDB)))

	r.GET("/admin/stations/temporary", admin(handlers.ListTemporaryStations(sqlDB)))
	r.POST("/admin/stations/temporary", admin(handlers.CreateTemporaryStation(sqlDB)))
	r.GET("/admin/stations/temporary/{id}", admin(handlers.GetTemporaryStation(sqlDB)))
	r.POST("/admin/stations/temporary/{id}", admin(handlers.UpdateTemporaryStation(sqlDB)))
	r.POST("/admin/stations/temporary/{id}/delete", admin(handlers.DeleteTemporaryStation(sqlDB)))
	r.POST("/admin/stations/temporary/purge-expired", admin(handlers.PurgeExpiredTemporaryStations(sqlDB)))

	r.GET("/admin/stations/permanent", admin(handlers.ListPermanentStations(sqlDB)))
	r.POST("/admin/stations/permanent", admin(handlers.CreatePermanentStation(sqlDB)))
	r.GET("/admin/stations/permanent/{id}", admin(handlers.GetPermanentStation(sqlDB)))
	r.POST("/admin/stations/permanent/{id}", admin(handlers.UpdatePermanentStation(sqlDB)))
	r.POST("/admin/stations/permanent/{id}/delete", admin(handlers.DeletePermanentStation(sqlDB)))

	r.GET("/admin/metrics", admin(handlers.MetricsHandler()))

	log.Printf("stationmap listening on %s", cfg.ListenAddr)
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
