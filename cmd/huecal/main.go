// Package main runs the engine against a local settings database. Without a
// host embedding it there is nothing to paint, but running standalone keeps
// the palette seed fresh and lets the change hub serve other windows
// sharing the database.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/huecal/huecal-engine/internal/controller"
	"github.com/huecal/huecal-engine/internal/di"
	"github.com/huecal/huecal-engine/internal/di/providers"
	"github.com/huecal/huecal-engine/internal/service"
)

// emptySource renders nothing; a real host supplies its own element source.
type emptySource struct{}

func (emptySource) Elements() []service.Element { return nil }

func main() {
	injector := di.NewContainer(emptySource{})

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap engine: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*slog.Logger](injector)
	ctrl := do.MustInvoke[*controller.Controller](injector)

	if err := ctrl.Activate(context.Background()); err != nil {
		log.Error("activation failed", "error", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctrl.Deactivate()

	if err := injector.Shutdown(); err != nil {
		log.Error("shutdown error", "error", err)
	}

	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		if err := storeHandle.Shutdown(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}
}
