// Tessera - A mosaic tile planner
//
// Tessera samples images into grids of square tiles and tells you how to mix
// every tile's colour from cyan, magenta, yellow, black and white paint.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/jmylchreest/tessera/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
