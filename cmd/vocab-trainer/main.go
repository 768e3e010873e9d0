// cmd/vocab-trainer/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/conversation"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/handlers"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/importexport"
	"github.com/smith3v/tg-vocab-trainer/pkg/config"
	"github.com/smith3v/tg-vocab-trainer/pkg/db"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "vocab-trainer",
	Short:         "Telegram bot for practicing Russian-English vocabulary",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runBot(ctx)
	},
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the schema and seed the common words, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, err := setup(cmd.Context(), false)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.json", "path to the config file; empty to use the environment only")
	rootCmd.AddCommand(initDBCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("vocab-trainer failed", "error", err)
		os.Exit(1)
	}
}

// setup loads configuration, opens the database and seeds the common words.
// The telegram token is only required when requireToken is set.
func setup(ctx context.Context, requireToken bool) (*gorm.DB, *vocabulary.Service, error) {
	if err := config.LoadConfig(configFile); err != nil {
		return nil, nil, err
	}
	if err := logger.Configure(logger.Options{
		Level: config.AppConfig.Logging.Level,
		File:  config.AppConfig.Logging.File,
	}); err != nil {
		logger.Error("failed to configure logger", "error", err)
	}

	if requireToken {
		if err := config.AppConfig.Validate(); err != nil {
			return nil, nil, err
		}
	} else if err := config.AppConfig.Database.Validate(); err != nil {
		return nil, nil, err
	}

	gdb, err := db.Open(config.AppConfig.Database, config.AppConfig.Logging)
	if err != nil {
		return nil, nil, err
	}
	store, err := db.NewStore(gdb)
	if err != nil {
		return nil, nil, err
	}
	service, err := vocabulary.NewService(store)
	if err != nil {
		return nil, nil, err
	}
	seeded, err := service.Initialize(ctx)
	if err != nil {
		logger.Error("failed to seed common words", "error", err)
		return nil, nil, err
	}
	logger.Info("database ready", "driver", config.AppConfig.Database.Driver, "seeded", seeded)
	return gdb, service, nil
}

func runBot(ctx context.Context) error {
	gdb, service, err := setup(ctx, true)
	if err != nil {
		return err
	}

	states, err := conversation.NewDBStore(gdb)
	if err != nil {
		return err
	}
	importer, err := importexport.NewImporter(service, config.AppConfig.Telegram.Token)
	if err != nil {
		return err
	}
	h, err := handlers.New(service, states, handlers.WithImporter(importer))
	if err != nil {
		return err
	}

	b, err := bot.New(config.AppConfig.Telegram.Token, bot.WithDefaultHandler(h.DefaultHandler))
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		return err
	}
	h.Register(b)
	if err := handlers.PublishCommands(ctx, b); err != nil {
		logger.Error("failed to publish bot commands", "error", err)
	}

	logger.Info("Starting bot...")
	b.Start(ctx)
	logger.Info("bot stopped")
	return nil
}
