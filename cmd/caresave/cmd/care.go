/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/caresave/pkg/profile"
)

// careCmd applies a CARE action to a profile
var careCmd = &cobra.Command{
	Use:   "care <accountId> <action>",
	Short: "Apply a CARE action to a profile",
	Long: fmt.Sprintf(`Apply a CARE action to a profile and store the result.

Actions: %s

Example:
  caresave care 2mKPdhGmc1O5Q0dIuUkm6JmbJXo tap`, strings.Join(profile.ActionNames(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		action, err := profile.LookupAction(args[1])
		if err != nil {
			return err
		}

		doc, err := a.store.Get(args[0])
		if err != nil {
			return err
		}
		if err := doc.Apply(action, container.GetClock().Now()); err != nil {
			return err
		}
		if err := a.store.Put(doc); err != nil {
			return err
		}

		a.logger.Debug("applied care action", zap.String("account_id", doc.UID), zap.String("action", action.Name))
		cmd.Printf("%s: CARE balance %d, companion %s\n", action.Name, doc.Balance(), doc.Status())
		return nil
	},
}

// sessionCmd records a completed session
var sessionCmd = &cobra.Command{
	Use:   "session <accountId>",
	Short: "Record a completed session",
	Long: `Record a completed session. An incubating egg counts down one session
and hatches when none remain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		doc, err := a.store.Get(args[0])
		if err != nil {
			return err
		}
		doc.CompleteSession(container.GetClock().Now())
		if err := a.store.Put(doc); err != nil {
			return err
		}
		cmd.Printf("Sessions: %d, companion %s\n", *doc.LifetimeSessions, doc.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(careCmd, sessionCmd)
}
