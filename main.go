package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/armankhl/smart-info-desk-agent/bootstrap"
	"github.com/armankhl/smart-info-desk-agent/config"
	"github.com/armankhl/smart-info-desk-agent/log"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// 0. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}
	log.Init(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		log.Fatalf(context.Background(), "Invalid configuration: %v", err)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C (SIGINT)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info(context.Background(), "Program terminated externally. Exiting...")
		cancel()
	}()

	// 1. Init App Components using Bootstrap
	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(context.Background(), "Setup failed: %v", err)
	}

	// 2. Start the read-print loop. Reading stdin cannot be interrupted, so
	// the loop runs aside and an interrupt ends the process directly.
	fmt.Println("Smart info desk. Ask about the weather, news, crypto prices or movies. Type 'quit' to exit.")
	done := make(chan error, 1)
	go func() {
		done <- app.Desk.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf(context.Background(), "Input loop failed: %v", err)
		}
	case <-ctx.Done():
		fmt.Println()
	}
}
