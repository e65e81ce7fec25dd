package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todio/internal/config"
	"github.com/sandeepkv93/todio/internal/scheduler"
	"github.com/sandeepkv93/todio/internal/storage"
	"github.com/sandeepkv93/todio/internal/store"
	"github.com/sandeepkv93/todio/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default: ~/.todio/config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "todio failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if _, err := storage.MigrateUp(repo.DB()); err != nil {
		return err
	}

	st, err := store.Open(context.Background(), repo)
	if err != nil {
		return err
	}

	runner := scheduler.NewRunner(st, time.Duration(cfg.PollIntervalSeconds)*time.Second, cfg.SchedulerBuffer)
	st.SetOnChange(func(deletedIDs []string) {
		for _, id := range deletedIDs {
			runner.Forget(id)
		}
		runner.Wake()
	})

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	model := update.NewModelWithRuntime(st, runner, notifier, cfg)

	runner.Start()
	defer runner.Stop()

	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
