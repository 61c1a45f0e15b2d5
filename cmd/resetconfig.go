package cmd

import (
	"os"

	"github.com/zt6453928/lunatv-enhanced/cmd/flags"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/store"
	"github.com/spf13/cobra"
)

var ResetConfigCmd = &cobra.Command{
	Use:   "resetconfig",
	Short: "Reset the admin config document",
	Long: `Reset the admin config document to its initial state. All manual
edits are discarded; the subscription URL and its last fetched file are
kept and re-imported.`,
	Example: `lunatv resetconfig`,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(flags.DatabaseFile); os.IsNotExist(err) {
			cmd.Println("Database file does not exist.")
			return
		}
		if err := config.Reset(store.New()); err != nil {
			cmd.Println("Error:", err)
			return
		}
		cmd.Println("Config document reset.")
	},
}

func init() {
	RootCmd.AddCommand(ResetConfigCmd)
}
