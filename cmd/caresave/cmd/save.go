/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/caresave/pkg/api"
	"github.com/ssargent/caresave/pkg/codec"
)

// saveCmd groups the user save commands
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Generate and load portable user saves",
}

var saveGenerateCmd = &cobra.Command{
	Use:   "generate <accountId>",
	Short: "Generate the user save for a profile",
	Long: `Generate the 63-byte user save for a profile and print its summary,
including the Base64 text used to move it between systems.

Example:
  caresave save generate 2mKPdhGmc1O5Q0dIuUkm6JmbJXo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		summary, err := a.saves.Generate(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, summary)
	},
}

var saveLoadCmd = &cobra.Command{
	Use:   "load <base64>",
	Short: "Decode a user save from its Base64 text",
	Long: `Decode a user save from its Base64 text and print its fields.
With --account the save is also checked against that profile's identity.

Example:
  caresave save load Q0FSRQGjhVMRuqNf1AAABdw... --account 2mKPdhGmc1O5Q0dIuUkm6JmbJXo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		record, err := a.saves.Load(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", codec.KindOf(err), err)
		}
		account, _ := cmd.Flags().GetString("account")
		return printDecoded(cmd, a, record, account)
	},
}

// printDecoded prints record, checking its identity against account when set
func printDecoded(cmd *cobra.Command, a *app, record *codec.UserRecord, account string) error {
	view := api.NewDecodedSave(record)
	if account != "" {
		match, err := a.saves.Verify(record, account)
		if err != nil {
			return err
		}
		view.IdentityMatch = &match
	}
	return printJSON(cmd, view)
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.AddCommand(saveGenerateCmd, saveLoadCmd)

	saveLoadCmd.Flags().String("account", "", "Check the save belongs to this account id")
}
