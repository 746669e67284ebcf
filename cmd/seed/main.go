package main

import (
	"context"
	"log"
	"os"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/pkg/clock"
	"notekeeper-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

var sample = map[string][]string{
	"Work":     {"Standup notes", "Quarterly goals", "1:1 agenda"},
	"Personal": {"Groceries", "Books to read"},
	"Ideas":    {},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	nopLogger := logger.NewNopLogger()
	uowFactory := unitofwork.NewRepositoryFactory(db, nil)
	clk := clock.NewMonotonic()
	notices := service.NewNoticeService(10, nopLogger)
	notebooks := service.NewNotebookService(uowFactory, service.NewNoopPublisher(), notices, clk, nopLogger)
	notes := service.NewNoteService(uowFactory, service.NewNoopPublisher(), notices, service.NewDraftStore(time.Hour), clk, true, nopLogger)

	for name, texts := range sample {
		nb, err := notebooks.Create(ctx, &dto.CreateNotebookRequest{Name: name})
		if err != nil {
			color.Red("✗ notebook %q: %v", name, err)
			continue
		}
		color.Green("✓ notebook %q (%s)", name, nb.Id)

		for _, text := range texts {
			created, err := notes.Create(ctx, nb.Id)
			if err != nil {
				color.Red("  ✗ note: %v", err)
				continue
			}
			if _, err := notes.UpdateText(ctx, &dto.UpdateNoteRequest{Id: created.Id, Text: text}); err != nil {
				color.Yellow("  ! note %s kept default text: %v", created.Id, err)
				continue
			}
			color.Cyan("  ✓ note %q", text)
		}
	}

	rows, err := notebooks.List(ctx)
	if err != nil {
		color.Red("List failed: %v", err)
		os.Exit(1)
	}
	for _, row := range rows {
		color.White("%-10s %s", row.Name, row.Pages)
	}
}
