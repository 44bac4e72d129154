// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/saveenstha/repopulse/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analytics dashboard over HTTP",
	Long: `Starts the web dashboard. Snapshots are cached in memory for the
configured TTL, so repeated views of the same repository do not burn
API quota.`,
	Run: func(cmd *cobra.Command, args []string) {
		d, err := buildDeps(cmd, true, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = d.cfg.Addr
		}

		if d.logger.GetLevel() < logrus.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		router := gin.New()
		router.Use(gin.Recovery())
		web.NewHandler(d.fetcher, d.analyzer, d.logger).Register(router)

		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}
		go func() {
			d.logger.WithField("addr", addr).Info("dashboard listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.WithError(err).Fatal("server failed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		d.logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			d.logger.WithError(err).Error("forced shutdown")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (defaults to REPOPULSE_ADDR)")
}
