/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/caresave/pkg/codec"
	"github.com/ssargent/caresave/pkg/tag"
)

// tagCmd groups the commands that move saves on and off the tag image
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Write and read user saves on a tag",
	Long: `Write and read user saves on a tag. The tag is a file-backed image
(tag.path in the config) that always holds tag.capacity bytes.`,
}

func openTag(cmd *cobra.Command, a *app) (*tag.Tag, error) {
	path := a.cfg.Tag.Path
	if cmd.Flags().Changed("tag") {
		path, _ = cmd.Flags().GetString("tag")
	}
	return tag.Open(path, a.cfg.Tag.Capacity)
}

var tagWriteCmd = &cobra.Command{
	Use:   "write <accountId>",
	Short: "Write a profile's user save to the tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		t, err := openTag(cmd, a)
		if err != nil {
			return err
		}
		summary, err := a.saves.WriteTag(args[0], t)
		if err != nil {
			return err
		}
		cmd.Printf("Wrote %d of %d bytes to %s\n", summary.Size, t.Capacity(), t.Path())
		return nil
	},
}

var tagReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Decode the user save stored on the tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		t, err := openTag(cmd, a)
		if err != nil {
			return err
		}
		record, err := a.saves.ReadTag(t)
		if err != nil {
			if kind := codec.KindOf(err); kind != codec.KindUnknown {
				return fmt.Errorf("%s: %w", kind, err)
			}
			return err
		}
		account, _ := cmd.Flags().GetString("account")
		return printDecoded(cmd, a, record, account)
	},
}

var tagEraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Zero the tag",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		t, err := openTag(cmd, a)
		if err != nil {
			return err
		}
		if err := t.Erase(); err != nil {
			return err
		}
		cmd.Printf("Erased %s\n", t.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagWriteCmd, tagReadCmd, tagEraseCmd)

	tagCmd.PersistentFlags().String("tag", "", "Tag image path (default: tag.path from the config)")
	tagReadCmd.Flags().String("account", "", "Check the save belongs to this account id")
}
