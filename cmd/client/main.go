package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/promptpal/internal/client/cli"
	"github.com/iudanet/promptpal/internal/client/iocli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New(iocli.NewStdio())
	err := app.RootCmd().ExecuteContext(ctx)

	// Закрываем хранилище до os.Exit, defer не выполнится
	if closeErr := app.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v\n", closeErr)
	}
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorMessage(err))
		os.Exit(1)
	}
}
