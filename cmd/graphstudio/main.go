package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"graphstudio/internal/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		render.Bad.Fprintf(os.Stderr, "graphstudio: %v\n", err)
		os.Exit(1)
	}
}
