// Command masterdata runs the master-data service: the HTTP API, the
// load pipelines behind it, and the optional periodic team-load scheduler.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/matchday/masterdata/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
