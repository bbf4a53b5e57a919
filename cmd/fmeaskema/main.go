package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reoring/fmeaskema/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			os.Exit(130)
		case errors.Is(err, cli.ErrValidationFailed):
			// report already printed
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
