package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
)

const shutdownTimeout = 5 * time.Second

func main() {
	di := flag.String("di", "dig", "how dependencies are wired: dig|manual")
	flag.Parse()

	switch *di {
	case "dig":
		startWithDig()
	case "manual":
		startManual()
	default:
		log.Fatalf("unknown -di %q", *di)
	}
}

// serve runs the server until it fails or a shutdown signal arrives.
func serve(conf *core.Config, logger core.Logger, store school.Storage, server *echoapi.Server) {
	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", err)
		}
	}()

	// =========================================================================
	// Start API Service

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
