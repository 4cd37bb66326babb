package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.minekube.com/vselect/pkg/cmd/vselect"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := vselect.App().RunContext(ctx, os.Args); err != nil {
		os.Exit(1)
	}
}
