package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fitlog/internal/adapters/api"
	"fitlog/internal/adapters/api/middleware"
	"fitlog/internal/adapters/db/memory"
	pgrepo "fitlog/internal/adapters/db/postgres"
	appauth "fitlog/internal/application/auth"
	planapp "fitlog/internal/application/plan"
	workoutapp "fitlog/internal/application/workout"
	"fitlog/internal/config"
	domainplan "fitlog/internal/domain/plan"
	domainworkout "fitlog/internal/domain/workout"
)

//	@title			Fitlog API
//	@version		1.0
//	@description	Fitness tracking API with versioned workout plans and Supabase authentication

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the Supabase access token.

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.LoadConfig()

	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("supabase_url", cfg.Auth.ProjectURL).
		Str("jwt_algorithm", cfg.Auth.JWTAlgorithm).
		Msg("Starting fitlog server")

	// Token verifier fails here on misconfiguration, before any request
	authService, err := appauth.NewService(&cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid auth configuration")
	}

	// Initialize repositories (choose Postgres or in-memory)
	var planRepo domainplan.Repository
	var workoutRepo domainworkout.Repository
	var locks planapp.Locker

	if cfg.Database.Enabled {
		log.Info().Msg("Initializing Postgres repositories")
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping postgres")
		}
		if err := pgrepo.RunMigrations(ctx, db, cfg.Database.Migrations); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}

		pool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open pgx pool")
		}

		planRepo = pgrepo.NewPlanRepository(db)
		workoutRepo = pgrepo.NewWorkoutRepository(db)
		locks = pgrepo.NewLockManager(pool)
	} else {
		log.Warn().Msg("DB disabled - using in-memory repositories")
		planRepo = memory.NewPlanRepository()
		workoutRepo = memory.NewWorkoutRepository()
	}

	// Initialize services
	planService := planapp.NewService(planRepo, locks)
	workoutService := workoutapp.NewService(workoutRepo, planRepo)

	// Initialize API handler
	handler := api.NewHandler(planService, workoutService, authService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Register routes
	handler.RegisterRoutes(r,
		middleware.RequireAuth(authService),
		middleware.OptionalAuth(authService),
		middleware.RequireAAL2(),
	)

	// Start server
	log.Info().Msgf("Starting fitlog server on port %s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
