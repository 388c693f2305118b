package main // Entry point package

import (
	"log"  // Logging library
	"time" // TTL conversion

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/imisi99/Todoapi/internal/config"     // Internal config loader
	"github.com/imisi99/Todoapi/internal/database"   // MySQL connection pool
	"github.com/imisi99/Todoapi/internal/handler"    // HTTP handlers
	"github.com/imisi99/Todoapi/internal/queue"      // RabbitMQ email pipeline
	"github.com/imisi99/Todoapi/internal/repository" // DB repositories
	"github.com/imisi99/Todoapi/internal/router"     // Internal router setup
	"github.com/imisi99/Todoapi/internal/service"    // auth service
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env wins

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // Optional Redis client for the response cache

	users := repository.NewUserRepo(db) // Wire repositories
	otps := repository.NewOtpRepo(db)
	todos := repository.NewTodoRepo(db)

	auth := service.NewAuth(users, otps, todos, queue.EmailNotifier{}, cfg.JWTSecret, cfg.BcryptCost)
	auth.TokenTTL = time.Duration(cfg.AccessTTLMin) * time.Minute // Session lifetime
	auth.OtpSesTTL = time.Duration(cfg.OtpSessionTTLMin) * time.Minute
	auth.OtpTTL = time.Duration(cfg.OtpTTLMin) * time.Minute

	go func() { // Drain the email queue in the background
		if err := queue.StartEmailConsumer(); err != nil {
			log.Printf("email consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterUser(e, handler.NewAuthHandler(auth), auth)
	router.RegisterTodo(e, handler.NewTodoHandler(todos), auth, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
