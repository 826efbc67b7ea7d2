package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/tracefunnel/trace-funnel/internal/httpserver"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (echoConfig, error) {
	var cfg echoConfig

	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ECHO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("host", defaultBindHost)
	v.SetDefault("port", defaultPort)

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	cfg.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return cfg, nil
}

// runServer serves until the process receives SIGINT or SIGTERM.
func runServer(cfg echoConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	srv := httpserver.NewServer(cfg.Addr)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}
	log.Printf("echo server listening on %s", srv.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})
	if err := g.Wait(); err != nil {
		log.Printf("server: shutdown error: %v", err)
	}
	return nil
}
