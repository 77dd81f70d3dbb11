package main

import (
	"fmt"
	"net"
	"os"
	"os/user"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	_ "github.com/snowflakedb/gosnowflake"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/de-tools/biz-atlas/pkg/server"
	"github.com/de-tools/biz-atlas/pkg/services/config"
	"github.com/de-tools/biz-atlas/pkg/services/report"
	"github.com/de-tools/biz-atlas/pkg/store/sqlstore"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Biz Atlas",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.bizatlas.ini", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the store profiles file (default is $HOME/.bizatlas.ini)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DB_PROFILE", "default")

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Found the following profiles:")
	profiles, _ := registry.GetProfiles(ctx)
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Type: `%s`", profile.Name, profile.Type)
	}

	settings, err := registry.GetSettings(ctx, v.GetString("DB_PROFILE"))
	if err != nil {
		return fmt.Errorf("failed to resolve store profile: %w", err)
	}
	if maxConns := v.GetInt("DB_MAX_CONNS"); maxConns > 0 {
		settings.MaxOpenConns = maxConns
	}

	store, err := sqlstore.NewStore(*settings)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	identity, err := store.TestConnection(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("store probe failed, continuing startup")
	} else {
		logger.Info().Msgf("Connected to `%s` server `%s`.", settings.Driver, identity)
	}

	dispatcher := report.NewDispatcher(report.NewRegistry(), report.NewExecutor(store))

	host := v.GetString("SERVER_HOST")
	port := v.GetString("SERVER_PORT")
	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Dispatcher: dispatcher,
			Store:      store,
			Logger:     logger,
		},
	})

	return api.Start()
}
