package main

import (
	"context"
	"fmt"
	"os"

	"charm-wallet-connect/config"
	"charm-wallet-connect/provider"
	logview "charm-wallet-connect/views/log"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

var version = "dev"

// CLI holds the command line flags
type CLI struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	Provider string           `help:"Wallet provider endpoint (ws URL or IPC path). Probed before the configured ones." env:"ETH_PROVIDER_URL" short:"p"`
	Config   string           `help:"Path to the config file." type:"path" placeholder:"FILE"`
	Log      bool             `help:"Show the log panel." short:"l"`
}

// -------------------- MAIN --------------------

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("charm-wallet-connect"),
		kong.Description("Connect to an Ethereum wallet and follow its accounts and chain."),
		kong.Vars{"version": version},
	)

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	configPath := cli.Config
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg := config.LoadOrCreate(configPath)
	if cli.Log {
		cfg.Logger = true
	}

	buf := &logview.Buffer{}
	logger := newLogger(buf)

	// Provider detection happens exactly once, before the first frame
	detection := provider.Detect(context.Background(), cfg.Candidates(cli.Provider), logger)

	m := newModel(detection, cfg, configPath, logger, buf)
	defer m.shutdown()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(&m, opts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
