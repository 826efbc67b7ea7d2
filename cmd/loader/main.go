package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tracefunnel/trace-funnel/internal/warehouse"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (loaderConfig, error) {
	var cfg loaderConfig

	// Optional .env for local runs; the real environment wins.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("table-id", "")
	v.SetDefault("source-file", defaultSourceFile)
	v.SetDefault("project-id", "")

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.TableID) == "" {
		return cfg, fmt.Errorf("TABLE_ID is not set")
	}
	return cfg, nil
}

func run(cfg loaderConfig) error {
	ctx := context.Background()

	table, err := warehouse.ParseTableID(cfg.TableID)
	if err != nil {
		return err
	}

	// A fully-qualified TABLE_ID carries the project; otherwise the client
	// detects it from ambient credentials.
	project := cfg.Project
	if project == "" {
		project = table.Project
	}

	client, err := warehouse.NewBigQueryClient(ctx, project)
	if err != nil {
		return err
	}
	defer client.Close()

	stats, err := warehouse.NewLoader(client).Run(ctx, table, cfg.SourceFile)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d rows and %d columns to %s\n", stats.NumRows, stats.NumColumns, cfg.TableID)
	return nil
}
