package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sefazor/gracex-storefront/internal/config"
	"github.com/sefazor/gracex-storefront/internal/server"
	"github.com/sefazor/gracex-storefront/internal/service"
	"github.com/sefazor/gracex-storefront/pkg/bcrypt"
	"github.com/sefazor/gracex-storefront/pkg/logger"
	"github.com/sefazor/gracex-storefront/pkg/payment"
)

// Version is set at build time with -ldflags.
var Version = "dev"

const shutdownTimeout = 10 * time.Second

var envFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gracex",
		Short:         "GraceX storefront: Stripe checkout, billing portal and webhooks",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnvFile(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(&cobra.Command{
		Use:   "tiers",
		Short: "Print the tier to price lookup key mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTiers(cmd.OutOrStdout())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "hash-key <admin-key>",
		Short: "Print a bcrypt hash usable as an ADMIN_KEYS entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.HashKey(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	})

	return root
}

// A missing env file is normal in deployed environments.
func loadEnvFile(stderr io.Writer) {
	if envFile == "" {
		return
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(stderr, "warning: could not load %s: %v\n", envFile, err)
	}
}

func printTiers(out io.Writer) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	tiers, err := service.NewTierRegistry(cfg.TierLookupKeys())
	if err != nil {
		return err
	}
	for _, tier := range tiers.All() {
		fmt.Fprintf(out, "%-10s %s\n", tier.Name, tier.LookupKey)
	}
	return nil
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Stripe service
	stripeService := payment.NewStripeService(cfg.StripeSecretKey)

	app, err := server.New(server.Deps{
		Config:   cfg,
		Logger:   log,
		Provider: stripeService,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", cfg.Addr()),
			zap.String("app_domain", cfg.AppDomain),
			zap.Int("trial_days", cfg.TrialDays),
			zap.Bool("webhook_verification", cfg.WebhookSecret != ""),
			zap.Int("admin_keys", len(cfg.AdminKeys)))
		errCh <- app.Listen(cfg.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	return app.ShutdownWithTimeout(shutdownTimeout)
}
