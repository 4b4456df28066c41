package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hub-install-api/pkg/api"
	"hub-install-api/pkg/appcatalog"
	"hub-install-api/pkg/config"
	"hub-install-api/pkg/helm"
	"hub-install-api/pkg/logging"
	"hub-install-api/pkg/metrics"
)

func newServeCmd() *cobra.Command {
	var catalogPath, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Load application configuration
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("catalog") {
				cfg.CatalogPath = catalogPath
			}
			if cmd.Flags().Changed("port") {
				cfg.ListenPort = port
			}
			return serve(cfg)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (overrides CATALOG_PATH)")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides APP_PORT)")
	return cmd
}

func serve(cfg *config.AppConfig) error {
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.GinMode)

	catalogService, err := appcatalog.NewService(cfg.CatalogPath, helm.NewIndexLoader(logger), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog service: %w", err)
	}

	opts := api.RouterOptions{
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:            logger,
	}
	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewRecorder(reg)
		opts.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	router := api.SetupRouter(api.NewAPIHandler(catalogService, recorder, logger), opts)

	listenAddr := fmt.Sprintf(":%s", cfg.ListenPort)
	logger.Info("API server starting", zap.String("addr", listenAddr), zap.String("mode", cfg.GinMode))
	if err := router.Run(listenAddr); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}
