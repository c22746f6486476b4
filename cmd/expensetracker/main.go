package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"expensetracker/internal/cli"
	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/display"
	"expensetracker/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI())
	if err != nil {
		log.Fatalf("Unable to connect to the database: %v", err)
	}
	defer db.Close()
	log.Println("Connection to the database successful!")

	if cfg.CreateTables {
		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Database migrations completed")
	}

	// Ctrl+C exits immediately; the menu is otherwise blocked reading stdin
	// and would only notice a cancelled context after the next keypress.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
		db.Close()
		log.Println("Program exited.")
		os.Exit(0)
	}()

	repo := repository.NewTransactionRepository(db)
	renderer := display.New(os.Stdout)
	menu := cli.NewMenu(repo, renderer, os.Stdin, os.Stdout)

	if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Menu error: %v", err)
	}
}
