package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Handle Ctrl+C gracefully: the run stops between generations
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
