package main

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"time"

	_ "github.com/lib/pq" // "postgres" database/sql driver, selected with --db-driver=postgres
	"github.com/nhan10132020/moviedb/internal/data"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	version   string
	buildTime string
)

type config struct {
	port     int
	env      string
	logLevel string
	db       struct {
		driver       string
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
		automigrate  bool
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	cors struct {
		trustedOrigins []string
	}
}

type application struct {
	config config
	logger *zap.Logger
	models data.Models
	wg     sync.WaitGroup
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// run connects to the database and serves the API until a shutdown signal arrives.
func run(cfg config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, postgresDB, err := openDB(cfg, logger)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer postgresDB.Close()
	logger.Info("database connection pool established", zap.String("driver", cfg.db.driver))

	if cfg.db.automigrate {
		if err := data.AutoMigrate(db); err != nil {
			logger.Fatal("automigrate", zap.Error(err))
		}
		logger.Info("database schema migrated")
	}

	publishExpvars(postgresDB)

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(db),
	}

	err = app.serve()
	if err != nil {
		logger.Fatal("serve", zap.Error(err))
	}

	return nil
}

// migrate creates the tables and exits.
func migrate(cfg config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, postgresDB, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	defer postgresDB.Close()

	if err := data.AutoMigrate(db); err != nil {
		return err
	}

	logger.Info("database schema migrated")
	return nil
}

func newLogger(cfg config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.logLevel)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.env == "development" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level

	return zc.Build()
}

func openDB(cfg config, logger *zap.Logger) (*gorm.DB, *sql.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: cfg.db.driver,
		DSN:        cfg.db.dsn,
	}), &gorm.Config{
		Logger: gormlogger.New(zap.NewStdLog(logger), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, nil, err
	}

	postgresDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}

	postgresDB.SetMaxOpenConns(cfg.db.maxOpenConns)
	postgresDB.SetMaxIdleConns(cfg.db.maxIdleConns)

	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, nil, err
	}
	postgresDB.SetConnMaxIdleTime(duration)

	// create a context with a 5-second timeout deadline
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = postgresDB.PingContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	return db, postgresDB, nil
}
