package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/andres-erbsen/clock"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cross_escrow/handler"
	"github.com/cross_escrow/model"
	"github.com/cross_escrow/repository"
	"github.com/cross_escrow/router"
	"github.com/cross_escrow/service"
)

func main() {
	viper.SetConfigFile("config/config.yaml")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("Config file error:", err)
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	switch strings.ToUpper(viper.GetString("log.level")) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := gorm.Open(postgres.Open(viper.GetString("db.dsn")), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := model.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate schema")
	}

	store := repository.NewGormStore(db)
	ledgerClock := service.NewLedgerClock(clock.New())
	locks := service.NewLockTable()

	adminSvc := service.NewAdminService(store, logger)
	if _, err := adminSvc.EnsureConfig(viper.GetString("admin.address")); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize protocol config")
	}

	walletSvc := service.NewWalletService(store, ledgerClock, logger)
	escrowSvc := service.NewEscrowService(store, ledgerClock, locks, logger)
	settlementSvc := service.NewSettlementService(store, ledgerClock, locks, logger)
	rescueSvc := service.NewRescueService(store, ledgerClock, locks, logger)
	secretSvc := service.NewSecretService()

	sweepInterval := viper.GetDuration("sweep.interval")
	if sweepInterval == 0 {
		sweepInterval = time.Minute
	}
	sweeper := service.NewSweepService(store, ledgerClock, logger, sweepInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	r := router.SetupRouter(
		handler.NewWalletHandler(walletSvc, secretSvc),
		handler.NewEscrowHandler(escrowSvc, settlementSvc, rescueSvc),
		handler.NewAdminHandler(adminSvc),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", viper.GetInt("server.port")),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()
	logger.Info().Int("port", viper.GetInt("server.port")).Msg("escrow ledger running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info().Msg("shutdown signal received, exiting...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
}
