package cmd

import (
	"fmt"
	"os"

	"github.com/zt6453928/lunatv-enhanced/cmd/flags"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "lunatv",
	Short: "LunaTV aggregates third-party video sources behind one admin panel",
	Long: `LunaTV aggregates third-party video API sources behind a single
admin-configurable panel and serves the resolved source list to set-top
box clients.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetArgs([]string{"server"})
		cmd.Execute()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flags.DatabaseType, "database-type", "t", "sqlite", "Database type: sqlite, mysql")
	RootCmd.PersistentFlags().StringVarP(&flags.DatabaseFile, "database", "d", "lunatv.db", "Database file")
	RootCmd.PersistentFlags().StringVar(&flags.DatabaseHost, "db-host", "localhost", "Database host")
	RootCmd.PersistentFlags().StringVar(&flags.DatabasePort, "db-port", "3306", "Database port")
	RootCmd.PersistentFlags().StringVar(&flags.DatabaseUser, "db-user", "root", "Database user")
	RootCmd.PersistentFlags().StringVar(&flags.DatabasePass, "db-pass", "", "Database password")
	RootCmd.PersistentFlags().StringVar(&flags.DatabaseName, "db-name", "lunatv", "Database name")
	RootCmd.PersistentFlags().StringVarP(&flags.Listen, "listen", "l", "0.0.0.0:3000", "Listen address")
}
