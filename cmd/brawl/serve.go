package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawl/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and fight.

Each SSH connection gets its own single-player session with an arena picker.
Match history is stored per server (all users share the same history).

Host key handling:
  - If --host-key (or ssh.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.brawl/host_key

Examples:
  brawl serve                           # Listen on ssh.address from config
  brawl serve --ssh :2222               # Listen on port 2222
  brawl serve --host-key ./my_host_key  # Use specific host key
  brawl serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings := mustSettings(cmd)
	if flagSSHAddr != "" {
		settings.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		settings.SSH.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		settings.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}

	logger, closeLog, err := newLogger(settings.Log, "brawl-ssh", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     settings.SSH.Address,
		HostKeyPath: settings.SSH.HostKey,
		DBPath:      settings.Storage.DB,
		IdleTimeout: settings.SSH.IdleTimeout(),
		TickRate:    settings.Display.FPS,
		Bots:        settings.Session.Population(),
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting brawl SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
