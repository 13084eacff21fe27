package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the menu. All users share
one leaderboard; scores are labelled with the SSH login.

With --http, a JSON API is served as well:
  GET /api/health
  GET /api/scores?limit=N
  GET /api/scores/best
  GET /api/stats
  GET /api/terrain?seed=S&level=L&width=W&height=H

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lander/host_key

Examples:
  lander serve                           # Listen on :23234 with auto-generated key
  lander serve --ssh :2222               # Listen on port 2222
  lander serve --http :8080              # Also serve the HTTP API
  lander serve --ssh "" --http :8080     # HTTP API only
  lander serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom lander config YAML")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return errors.New("nothing to serve: both --ssh and --http are empty")
	}
	lander.SetConfigPath(flagConfig)

	srvLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lander",
	})

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 0

	if flagSSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = flagSSHAddr
		sshCfg.HostKeyPath = flagHostKey
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS

		server, err := tui.NewSSHServer(sshCfg, store, srvLogger.WithPrefix("lander-ssh"))
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		running++
		go func() { errCh <- server.ListenAndServe(ctx) }()
	}

	if flagHTTPAddr != "" {
		lc, err := config.LoadLander(flagConfig)
		if err != nil {
			srvLogger.Warn("using default config for terrain previews", "error", err)
		}
		webCfg := web.DefaultConfig()
		webCfg.Address = flagHTTPAddr
		webCfg.Lander = lc

		server := web.NewServer(webCfg, store, srvLogger.WithPrefix("lander-http"))
		running++
		go func() { errCh <- server.ListenAndServe(ctx) }()
	}

	// The first server to stop takes the other down with it.
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
		stop()
	}
	return firstErr
}
