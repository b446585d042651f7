package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spigell/resume-matcher/internal/config"
	"github.com/spigell/resume-matcher/internal/engine"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", config.Default().Server.Address, "listen address, overrides server.address")

	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	cfg, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting the resume-matcher server", zap.String("version", version))

	extractor, err := newExtractor(ctx, cfg.Extraction, logger)
	if err != nil {
		logger.Warn("skipping ai extraction", zap.Error(err))
	}

	eng, err := engine.New(cfg, extractor, logger)
	if err != nil {
		logger.Fatal("creating the engine", zap.Error(err))
	}

	if err := server.New(eng, cfg.Server, logger).Run(ctx); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}
