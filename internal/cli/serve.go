package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganot/procflow/internal/domain/process"
	"github.com/ganot/procflow/internal/domain/repair"
	"github.com/ganot/procflow/internal/transport"
	"github.com/ganot/procflow/internal/uploads"
)

// NewServeCommand creates the serve command running the HTTP API.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the process tracker HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	files, err := uploads.NewDisk(e.cfg.Uploads.Dir)
	if err != nil {
		return err
	}

	processSvc := process.NewService(e.store, files, e.logger)
	repairSvc := repair.NewService(e.store, e.logger)

	router := transport.NewRouter(processSvc, repairSvc, files, files.Dir(), e.cfg.Server.AllowedOrigins, e.logger)

	addr := fmt.Sprintf("%s:%d", e.cfg.Server.Host, e.cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		e.logger.Info("server listening", "addr", addr, "store", e.cfg.Store.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			e.logger.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	e.logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		e.logger.Error("shutdown error", "error", err)
	}
	return nil
}
