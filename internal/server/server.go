package server

import (
	"backend-tripplanner/internal/auth"
	"backend-tripplanner/internal/config"
	"backend-tripplanner/internal/object"
	"backend-tripplanner/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Server struct {
	App *fiber.App
	Cfg config.Config
	DB  *pgxpool.Pool
}

func NewServer(cfg config.Config, db *pgxpool.Pool) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App: app,
		Cfg: cfg,
		DB:  db,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authSvc := auth.NewService(s.DB)
	basicAuth := auth.BasicAuthMiddleware(authSvc)

	auth.RegisterRoutes(s.App.Group("/users"), authSvc, basicAuth)
	trip.RegisterRoutes(s.App.Group("/trips"), trip.NewService(s.DB), basicAuth)
	object.RegisterRoutes(s.App.Group("/objects"), object.NewService(s.DB))
}
