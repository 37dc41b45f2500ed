/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/caresave/pkg/profile"
)

// profileCmd groups the profile store commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage stored user profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create the starting profile for a new user",
	Long: `Create the starting profile for a new user. A new account id is
assigned and printed with the profile.

Example:
  caresave profile create ember@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		doc, err := a.store.Create(profile.NewDocument(args[0], "", container.GetClock().Now()))
		if err != nil {
			return err
		}
		return printJSON(cmd, doc)
	},
}

var profileGetCmd = &cobra.Command{
	Use:   "get <accountId>",
	Short: "Print a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		doc, err := a.store.Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, doc)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored account ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		ids, err := a.store.List()
		if err != nil {
			return err
		}
		for _, id := range ids {
			cmd.Println(id)
		}
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <accountId>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		if err := a.store.Delete(args[0]); err != nil {
			return err
		}
		cmd.Printf("Deleted profile %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileCreateCmd, profileGetCmd, profileListCmd, profileDeleteCmd)
}
