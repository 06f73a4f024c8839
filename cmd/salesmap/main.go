package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"salesmap/internal/config"
	"salesmap/internal/database"
	"salesmap/internal/database/repository"
	"salesmap/internal/mapclient"
	"salesmap/internal/service"
	"salesmap/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	workspace := &service.WorkspaceService{
		DB:      db,
		Owners:  repository.NewOwnerRepo(db),
		Regions: repository.NewRegionRepo(db),
	}
	client := mapclient.New(cfg.Server.BaseURL)

	p := tea.NewProgram(tui.New(ctx, cfg, client, workspace), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
