/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/caresave/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the caresave REST API server. Requests under /api/v1 must carry
the API key from the config in the X-API-Key header.

Examples:
  caresave serve
  caresave serve --port 9000 --bind 0.0.0.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			a.cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			a.cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if a.cfg.Security.APIKey == "" || a.cfg.Security.APIKey == "auto" {
			return errors.New("no API key configured, run 'caresave init' first")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("🚀 Starting caresave server on %s\n", a.cfg.Addr())
		cmd.Printf("📁 Data directory: %s\n", a.cfg.DataDir)

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, a.store, a.saves, api.ServerConfig{
			Addr:   a.cfg.Addr(),
			APIKey: a.cfg.Security.APIKey,
		}, a.logger.Named("api"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
}
