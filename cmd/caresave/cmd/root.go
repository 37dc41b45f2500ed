/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/caresave/pkg/codec"
	"github.com/ssargent/caresave/pkg/config"
	"github.com/ssargent/caresave/pkg/di"
	"github.com/ssargent/caresave/pkg/logging"
	"github.com/ssargent/caresave/pkg/storage"
	"github.com/ssargent/caresave/pkg/usersave"
)

var container *di.Container

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

type appKey struct{}

// app is everything a subcommand needs, built once per invocation
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *storage.ProfileStore
	codec  *codec.RecordCodec
	saves  *usersave.Service
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close profile store", zap.Error(err))
		}
		a.store = nil
	}
	_ = a.logger.Sync()
}

// opened is the app of the running invocation, closed by run even when a
// subcommand fails
var opened *app

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "caresave",
	Short: "caresave - portable CARE user saves",
	Long: `caresave manages CARE user profiles and their portable 63-byte user
saves: generate a save from a profile, load one back from Base64, and move
saves on and off a tag.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := openApp(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		opened = a
		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
		return nil
	},
}

// loadConfig reads the config file when one exists and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("data-dir") {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		cfg.DataDir = dataDir
		cfg.Tag.Path = filepath.Join(dataDir, "tag.bin")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openApp(cfg *config.Config, logOut io.Writer) (*app, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, Dev: cfg.Logging.Dev, Output: logOut})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	store, err := storage.NewProfileStore(cfg.ProfilesDir())
	if err != nil {
		return nil, err
	}

	clock := container.GetClock()
	codecOpts := []codec.Option{
		codec.WithClock(clock),
		codec.WithLogger(logger.Named("codec")),
	}
	if cfg.Codec.StrictVersion {
		codecOpts = append(codecOpts, codec.WithStrictVersion())
	}
	c := codec.NewRecordCodec(codecOpts...)

	saves := usersave.NewService(store, c,
		usersave.WithClock(clock),
		usersave.WithLogger(logger.Named("usersave")),
		usersave.WithTagCapacity(cfg.Tag.Capacity),
	)

	return &app{cfg: cfg, logger: logger, store: store, codec: c, saves: saves}, nil
}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey{}).(*app)
	if !ok {
		return nil, errors.New("profile store not found in context")
	}
	return a, nil
}

// printJSON writes v to the command's stdout as indented JSON
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// run executes the command tree with args and releases the store afterwards
func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	defer func() {
		if opened != nil {
			opened.close()
			opened = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.config/caresave/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "./data", "Data directory for profiles and the tag image")
}
