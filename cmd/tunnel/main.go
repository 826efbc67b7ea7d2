package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"

	"github.com/tracefunnel/trace-funnel/internal/tunnel"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runTunnel(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (tunnelConfig, error) {
	var cfg tunnelConfig

	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TUNNEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("user", "")
	v.SetDefault("host", "")
	v.SetDefault("ssh-port", defaultSSHPort)
	v.SetDefault("local-port", defaultLocalPort)
	v.SetDefault("remote-host", defaultRemoteHost)
	v.SetDefault("remote-port", defaultRemotePort)
	v.SetDefault("private-key-path", "")
	v.SetDefault("trace-file", defaultTraceFile)
	v.SetDefault("push-file", "")
	v.SetDefault("push-dir", ".")

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if strings.TrimSpace(cfg.User) == "" {
		return cfg, fmt.Errorf("TUNNEL_USER is not set")
	}
	if strings.TrimSpace(cfg.Host) == "" {
		return cfg, fmt.Errorf("TUNNEL_HOST is not set")
	}
	if strings.TrimSpace(cfg.PrivateKeyPath) == "" {
		return cfg, fmt.Errorf("TUNNEL_PRIVATE_KEY_PATH is not set")
	}
	for name, port := range map[string]int{
		"ssh-port":    cfg.SSHPort,
		"local-port":  cfg.LocalPort,
		"remote-port": cfg.RemotePort,
	} {
		if port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid %s: %d", name, port)
		}
	}

	cfg.SSHAddr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.SSHPort))
	cfg.LocalAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.LocalPort))
	cfg.RemoteAddr = net.JoinHostPort(cfg.RemoteHost, strconv.Itoa(cfg.RemotePort))
	return cfg, nil
}

// runTunnel forwards the local port over SSH until the process receives
// SIGINT or SIGTERM.
func runTunnel(cfg tunnelConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	client, err := tunnel.DialSSH(tunnel.SSHConfig{
		User:           cfg.User,
		Addr:           cfg.SSHAddr,
		PrivateKeyPath: cfg.PrivateKeyPath,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.PushFile != "" {
		if err := pushFile(client, cfg.PushFile, cfg.PushDir); err != nil {
			return err
		}
		log.Printf("pushed %s to %s:%s", cfg.PushFile, cfg.Host, cfg.PushDir)
	}

	fwd := tunnel.NewForwarder(cfg.LocalAddr, cfg.RemoteAddr, client)
	if cfg.TraceFile != "" {
		f, err := os.Create(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("opening trace file: %w", err)
		}
		defer f.Close()
		fwd.SetTraceLogger(slog.New(slog.NewJSONHandler(f, nil)))
	}

	if err := fwd.Start(); err != nil {
		return fmt.Errorf("failed to start forwarder: %w", err)
	}
	log.Printf("forwarding %s to %s via %s", fwd.Addr(), cfg.RemoteAddr, cfg.SSHAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return fwd.Stop()
	})
	if err := g.Wait(); err != nil {
		log.Printf("tunnel: shutdown error: %v", err)
	}
	return nil
}

func pushFile(client *ssh.Client, path, dir string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat push file: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening push file: %w", err)
	}
	defer f.Close()
	return tunnel.SendFile(client, dir, filepath.Base(path), f, info.Size(), info.Mode().Perm())
}
