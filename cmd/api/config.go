package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nhan10132020/moviedb/internal/validator"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	vp := viper.New()

	rootCmd := &cobra.Command{
		Use:          "moviedb",
		Short:        "JSON API for movies, directors and genres",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if displayVersion, _ := cmd.Flags().GetBool("version"); displayVersion {
				fmt.Printf("Version:\t%s\n", version)
				fmt.Printf("Build time:\t%s\n", buildTime)
				return nil
			}

			cfg, err := loadConfig(vp)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	defineFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("version", false, "Display version and exit")
	bindConfig(vp, rootCmd.PersistentFlags())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the movie, director and genre tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(vp)
			if err != nil {
				return err
			}
			return migrate(cfg)
		},
	})

	return rootCmd
}

func defineFlags(f *pflag.FlagSet) {
	// port and environment setting
	f.Int("port", 4000, "API server port")
	f.String("env", "development", "Environment (development|staging|production)")
	f.String("log-level", "info", "Log level (debug|info|warn|error)")

	// db setting
	f.String("db-driver", "pgx", "database/sql driver (pgx|postgres)")
	f.String("db-dsn", "", "PostgreSQL DSN")
	f.Int("db-max-open-conns", 25, "PostgreSQL max open connections")
	f.Int("db-max-idle-conns", 25, "PostgreSQL max idle connections")
	f.String("db-max-idle-time", "15m", "PostgreSQL max connection idle time")
	f.Bool("db-automigrate", false, "Create missing tables before serving")

	// rate-limiter setting
	f.Float64("limiter-rps", 2, "Rate limiter maximum requests per second")
	f.Int("limiter-burst", 4, "Rate limiter maximum burst")
	f.Bool("limiter-enabled", true, "Enable rate limiter")

	// cors setting
	f.String("cors-trusted-origins", "", "Trusted CORS origins (space separated)")
}

// bindConfig makes every flag readable from the environment as MOVIEDB_<FLAG>,
// e.g. MOVIEDB_DB_DSN. Flags given on the command line win.
func bindConfig(vp *viper.Viper, f *pflag.FlagSet) {
	vp.SetEnvPrefix("moviedb")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	vp.BindPFlags(f)
}

func loadConfig(vp *viper.Viper) (config, error) {
	var cfg config

	cfg.port = vp.GetInt("port")
	cfg.env = vp.GetString("env")
	cfg.logLevel = vp.GetString("log-level")

	cfg.db.driver = vp.GetString("db-driver")
	cfg.db.dsn = vp.GetString("db-dsn")
	cfg.db.maxOpenConns = vp.GetInt("db-max-open-conns")
	cfg.db.maxIdleConns = vp.GetInt("db-max-idle-conns")
	cfg.db.maxIdleTime = vp.GetString("db-max-idle-time")
	cfg.db.automigrate = vp.GetBool("db-automigrate")

	cfg.limiter.rps = vp.GetFloat64("limiter-rps")
	cfg.limiter.burst = vp.GetInt("limiter-burst")
	cfg.limiter.enabled = vp.GetBool("limiter-enabled")

	cfg.cors.trustedOrigins = strings.Fields(vp.GetString("cors-trusted-origins"))

	v := validator.New()
	v.Check(cfg.port > 0 && cfg.port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.PermittedValue(cfg.env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(validator.PermittedValue(cfg.db.driver, "pgx", "postgres"), "db-driver", "must be pgx or postgres")
	v.Check(cfg.db.dsn != "", "db-dsn", "must be provided")
	v.Check(cfg.limiter.rps > 0, "limiter-rps", "must be greater than zero")
	v.Check(cfg.limiter.burst > 0, "limiter-burst", "must be greater than zero")

	if !v.Valid() {
		msgs := make([]string, 0, len(v.Errors))
		for key, msg := range v.Errors {
			msgs = append(msgs, fmt.Sprintf("--%s %s", key, msg))
		}
		sort.Strings(msgs)
		return cfg, errors.New("invalid configuration: " + strings.Join(msgs, "; "))
	}

	return cfg, nil
}
