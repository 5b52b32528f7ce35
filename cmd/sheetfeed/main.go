// Package main provides the CLI entry point for sheetfeed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/models"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/output"
	"github.com/sheetfeed/sheetfeed-go/pkg/sheetfeed/site"
	"github.com/spf13/cobra"
)

var (
	configPath string
	outputPath string
	pretty     bool
	format     string
	strict     bool
	verbose    bool
	fetchRoute bool
	rangeRef   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetfeed",
		Short: "Fetch spreadsheet tabs as normalized records",
		Long: `sheetfeed reads the Posts and Songs tabs of the site spreadsheet and
outputs normalized records as JSON or xlsx.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sheetfeed.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "Output format: json, xlsx")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	fetchCmd := &cobra.Command{
		Use:   "fetch [tab...]",
		Short: "Fetch tabs from the spreadsheet API (default: Posts and Songs)",
		RunE:  runFetch,
	}
	fetchCmd.Flags().BoolVar(&strict, "strict", false, "Fail when a tab cannot be fetched instead of returning it empty")

	convertCmd := &cobra.Command{
		Use:   "convert [input.xlsx] [tab...]",
		Short: "Normalize tabs of a local workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&rangeRef, "range", sheetfeed.DefaultRange, "A1 range read from each tab")

	routeCmd := &cobra.Command{
		Use:   "route [path]",
		Short: "Resolve a site path to its view",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoute,
	}
	routeCmd.Flags().BoolVar(&fetchRoute, "fetch", false, "Also fetch the tab backing the route")

	rootCmd.AddCommand(fetchCmd, convertCmd, routeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

func newClient() (*sheetfeed.Client, zerolog.Logger, error) {
	log := newLogger()

	cfg, err := sheetfeed.LoadConfig(configPath)
	if err != nil {
		return nil, log, err
	}
	client, err := sheetfeed.NewClient(cfg, sheetfeed.WithLogger(log))
	if err != nil {
		return nil, log, fmt.Errorf("invalid configuration: %w", err)
	}
	return client, log, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	client, log, err := newClient()
	if err != nil {
		return err
	}
	ctx := log.WithContext(cmd.Context())

	tabs := args
	if len(tabs) == 0 {
		tabs = []string{sheetfeed.TabPosts, sheetfeed.TabSongs}
	}

	tables, err := fetchTables(ctx, client, tabs)
	if err != nil {
		return err
	}
	return writeTables(tables)
}

// fetchTables fetches tabs. In strict mode the tabs are fetched
// concurrently and the first failure aborts; otherwise they are fetched
// in order and a failed tab is logged and written out empty.
func fetchTables(ctx context.Context, client *sheetfeed.Client, tabs []string) ([]models.Table, error) {
	if strict {
		byTab, err := client.FetchAll(ctx, tabs...)
		if err != nil {
			return nil, err
		}
		tables := make([]models.Table, 0, len(tabs))
		for _, tab := range tabs {
			tables = append(tables, byTab[tab])
		}
		return tables, nil
	}

	tables := make([]models.Table, 0, len(tabs))
	for _, tab := range tabs {
		table, err := client.FetchTable(ctx, tab)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("tab", tab).Msg("Failed to fetch sheet tab")
			table = models.Table{Name: tab, Records: []models.Record{}}
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateFormat(); err != nil {
		return err
	}

	inputPath := args[0]

	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	tables, err := sheetfeed.ExtractWorkbook(inputPath, rangeRef, args[1:]...)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return writeTables(tables)
}

func runRoute(cmd *cobra.Command, args []string) error {
	m := site.Resolve(args[0])

	result := struct {
		site.Match
		Records []models.Record `json:"records,omitempty"`
		Record  models.Record   `json:"record,omitempty"`
	}{Match: m}

	if fetchRoute && m.Route.Tab != "" {
		client, log, err := newClient()
		if err != nil {
			return err
		}
		records := client.FetchOrEmpty(log.WithContext(cmd.Context()), m.Route.Tab)

		if m.Route.Param != "" {
			rec, ok := site.FindRecord(records, m.Route.Param, m.Params[m.Route.Param])
			if !ok {
				return fmt.Errorf("no %s record with %s %q", m.Route.Tab, m.Route.Param, m.Params[m.Route.Param])
			}
			result.Record = rec
		} else {
			result.Records = records
		}
	}

	jsonData, err := output.ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeBytes(jsonData)
}

func validateFormat() error {
	switch format {
	case "json":
		return nil
	case "xlsx":
		if outputPath == "" {
			return fmt.Errorf("--format xlsx requires --output")
		}
		return nil
	default:
		return fmt.Errorf("invalid format: %s (must be json or xlsx)", format)
	}
}

func writeTables(tables []models.Table) error {
	if format == "xlsx" {
		if err := output.WriteWorkbook(outputPath, tables); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	jsonData, err := output.TablesToJSON(tables, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeBytes(jsonData)
}

func writeBytes(data []byte) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}
