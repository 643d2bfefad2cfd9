package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/npezzotti/go-livechat/internal/api"
	"github.com/npezzotti/go-livechat/internal/config"
	"github.com/npezzotti/go-livechat/internal/database"
	"github.com/npezzotti/go-livechat/internal/stats"
)

type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, config.SplitList(value)...)
	return nil
}

var (
	addr           string
	driver         string
	dsn            string
	allowedOrigins stringSliceFlag
	sessionTTL     time.Duration
	typingTTL      time.Duration
	runMigrations  bool
)

func main() {
	logger := log.New(os.Stderr, "[go-livechat] ", log.LstdFlags)

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Fatal("dotenv:", err)
	}

	flag.StringVar(&addr, "addr", config.Env("ADDR", "localhost:8000"), "server address")
	flag.StringVar(&driver, "db-driver", config.Env("DB_DRIVER", database.DriverPostgres), "database driver (postgres, pgx or sqlite3)")
	flag.StringVar(&dsn, "dsn", config.Env("DSN", "host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"), "database connection string")
	flag.Var(&allowedOrigins, "allowed-origins", "comma-separated list of allowed origins for CORS")
	flag.DurationVar(&sessionTTL, "session-ttl", config.EnvDuration("SESSION_TTL", config.DefaultSessionTTL), "session lifetime")
	flag.DurationVar(&typingTTL, "typing-ttl", config.EnvDuration("TYPING_TTL", config.DefaultTypingTTL), "how long a typing flag stays fresh")
	flag.BoolVar(&runMigrations, "migrate", true, "apply database migrations on startup")
	flag.Parse()

	if len(allowedOrigins) == 0 {
		allowedOrigins = config.EnvList("ALLOWED_ORIGINS")
	}

	cfg, err := config.NewConfig(addr, driver, dsn, allowedOrigins, sessionTTL, typingTTL)
	if err != nil {
		logger.Fatal("config:", err)
	}

	if runMigrations {
		if err := database.Migrate(cfg.DatabaseDriver, cfg.DatabaseDSN); err != nil {
			logger.Fatal("migrate:", err)
		}
	}

	dbConn, err := database.NewSqlChatRepository(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("db open:", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Fatal("db close:", err)
		}
	}()

	router := mux.NewRouter()

	statsUpdater := stats.NewStatsUpdater(router)

	srv := api.NewChatApp(router, logger, dbConn, statsUpdater, cfg)

	statsUpdater.Run()
	defer statsUpdater.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Printf("received signal: %s\n", sig)
	case err := <-errCh:
		logger.Println("server:", err)
	}

	shutDownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutDownCtx); err != nil {
		logger.Fatalln("HTTP server shutdown:", err)
	}

	logger.Println("shutdown complete")
}
