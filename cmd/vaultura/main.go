package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zombocoder/vaultura/internal/app"
	"github.com/zombocoder/vaultura/internal/config"
	"github.com/zombocoder/vaultura/internal/logging"
	"github.com/zombocoder/vaultura/internal/platform"
	"github.com/zombocoder/vaultura/internal/ui"
	"github.com/zombocoder/vaultura/internal/vault"
)

var version = "dev"

func main() {
	var (
		vaultPath   = flag.String("vault", "", "path to the vault file (overrides config)")
		configPath  = flag.String("config", "", "path to the config file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("vaultura", version)
		return
	}

	if err := run(*vaultPath, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, "vaultura:", err)
		os.Exit(1)
	}
}

func run(vaultPath, configPath string) error {
	var (
		cfg config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if vaultPath != "" {
		cfg.VaultPath = vaultPath
	}

	// Keys live in this process; keep them out of crash dumps.
	if err := platform.DisableCoreDumps(); err != nil {
		fmt.Fprintln(os.Stderr, "vaultura: core dumps not disabled:", err)
	}

	logPath := filepath.Join(filepath.Dir(config.DefaultConfigPath()), "vaultura.log")
	log, logFile, err := logging.NewFileLogger(logPath, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer logFile.Close()

	svc := vault.NewService(cfg.VaultPath, cfg.KDFParams())
	dispatcher := app.NewDispatcher(
		svc,
		platform.NewClipboard(),
		platform.NewKeychain(),
		log,
		app.Options{
			ClipboardTTL: time.Duration(cfg.ClipboardClearSecs) * time.Second,
			UseKeyring:   cfg.UseKeyring,
		},
	)

	log.Info("starting",
		logging.String("version", version),
		logging.String("vault", cfg.VaultPath))

	model := ui.New(dispatcher, time.Duration(cfg.AutoLockSecs)*time.Second)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("ui exited", logging.Err(err))
		return err
	}
	log.Info("shutdown")
	return nil
}
