package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinelatam/taquilla-api/internal/audit"
	"github.com/cinelatam/taquilla-api/internal/auth"
	"github.com/cinelatam/taquilla-api/internal/config"
	"github.com/cinelatam/taquilla-api/internal/database"
	"github.com/cinelatam/taquilla-api/internal/handler"
	"github.com/cinelatam/taquilla-api/internal/middleware"
	"github.com/cinelatam/taquilla-api/internal/queue"
	"github.com/cinelatam/taquilla-api/internal/receipt"
	"github.com/cinelatam/taquilla-api/internal/repository"
	"github.com/cinelatam/taquilla-api/internal/reservation"
	"github.com/cinelatam/taquilla-api/internal/router"
)

func main() {
	_ = godotenv.Load() // absent .env is fine; real env wins

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	salas := repository.NewSalaRepo(db)
	asientos := repository.NewAsientoRepo(db)
	peliculas := repository.NewPeliculaRepo(db)
	horarios := repository.NewHorarioRepo(db)
	cartelera := repository.NewCarteleraRepo(db)
	pagos := repository.NewPagoRepo(db)
	boletos := repository.NewBoletoRepo(db)
	usuarios := repository.NewUsuarioRepo(db)
	dulceria := repository.NewDulceriaRepo(db)
	contacto := repository.NewContactoRepo(db)
	logs := repository.NewLogRepo(db)

	recorder := audit.NewDBRecorder(logs)

	rdb := config.NewRedisClient()
	var revoked auth.RevocationStore
	if rdb != nil {
		revoked = auth.NewRedisStore(rdb)
		log.Printf("redis: revocation store and rate limiter enabled")
	} else {
		revoked = auth.NewMemoryStore()
		log.Printf("redis: unavailable, using in-memory revocation store")
	}

	engine := reservation.NewEngine(
		&reservation.SQLCatalog{Peliculas: peliculas, Horarios: horarios, Salas: salas},
		&reservation.SQLStore{DB: db, Asientos: asientos, Pagos: pagos, Boletos: boletos},
		recorder,
	)

	publishEvents := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	if publishEvents {
		go func() {
			if err := queue.StartTicketConsumer(); err != nil {
				log.Printf("ticket-consumer: %v", err)
			}
		}()
	}

	h := router.Handlers{
		Auth: &handler.AuthHandler{
			Usuarios:   usuarios,
			Revoked:    revoked,
			Audit:      recorder,
			JWTSecret:  cfg.JWTSecret,
			TTLMin:     cfg.AccessTTLMin,
			BcryptCost: cfg.BcryptCost,
		},
		Usuarios:  &handler.UsuarioHandler{Usuarios: usuarios, Audit: recorder, BcryptCost: cfg.BcryptCost},
		Peliculas: &handler.PeliculaHandler{Peliculas: peliculas, Horarios: horarios, Audit: recorder},
		Horarios:  &handler.HorarioHandler{Horarios: horarios, Audit: recorder},
		Salas:     &handler.SalaHandler{Salas: salas, Asientos: asientos, Audit: recorder},
		Asientos:  &handler.AsientoHandler{Asientos: asientos},
		Cartelera: &handler.CarteleraHandler{Cartelera: cartelera, Peliculas: peliculas, Horarios: horarios, Salas: salas, Audit: recorder},
		Boletos: &handler.BoletoHandler{
			Engine:        engine,
			Boletos:       boletos,
			Usuarios:      usuarios,
			Encoder:       receipt.QREncoder{},
			Venue:         cfg.Venue,
			PublishEvents: publishEvents,
		},
		Pagos:    &handler.PagoHandler{Engine: engine, Pagos: pagos, PublishEvents: publishEvents},
		Dulceria: &handler.DulceriaHandler{Productos: dulceria, Audit: recorder},
		Contacto: &handler.ContactoHandler{Mensajes: contacto, Audit: recorder},
		Logs:     &handler.LogHandler{Logs: logs},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	router.Register(e, h, cfg.JWTSecret, revoked)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
