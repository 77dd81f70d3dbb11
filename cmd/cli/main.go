package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/user"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	_ "github.com/snowflakedb/gosnowflake"
	"github.com/spf13/cobra"

	"github.com/de-tools/biz-atlas/pkg/adapters"
	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/services/config"
	"github.com/de-tools/biz-atlas/pkg/services/report"
	"github.com/de-tools/biz-atlas/pkg/store/sqlstore"
)

var (
	cfgPath   string
	profile   string
	dateRange string
)

// The CLI runs one report against a configured profile and prints the
// shaped payload as JSON, mirroring what the web API would serve.
func main() {
	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.bizatlas.ini", usr.HomeDir)

	rootCmd := &cobra.Command{
		Use:   "report <type>",
		Short: "Generate one dashboard report and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the store profiles file")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "default",
		"Store profile to connect with")
	rootCmd.Flags().StringVarP(&dateRange, "date-range", "d", "",
		"Date range filter (2011..2014, 2011-2014, q1..q4, all)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}
	settings, err := registry.GetSettings(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to resolve store profile: %w", err)
	}

	store, err := sqlstore.NewStore(*settings)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	dispatcher := report.NewDispatcher(report.NewRegistry(), report.NewExecutor(store))

	params := url.Values{}
	if dateRange != "" {
		params.Set("dateRange", dateRange)
	}
	filters := report.NormalizeFilters(params)

	merged, err := dispatcher.Run(ctx, domain.ReportType(args[0]), filters)
	if err != nil {
		return err
	}

	payload, err := adapters.MapReportDomainToAPI(merged)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
