package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ktsu-dev/BlastMerge-sub002/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exitCode := cli.Execute(ctx)
	stop()
	os.Exit(exitCode)
}
