package cmd

import (
	"os"

	"github.com/zt6453928/lunatv-enhanced/cmd/flags"
	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/accounts"
	"github.com/zt6453928/lunatv-enhanced/database/models"
	"github.com/spf13/cobra"
)

var (
	NewPassword    string
	TargetUsername string
)

var ChpasswdCmd = &cobra.Command{
	Use:     "chpasswd",
	Short:   "Force change password",
	Long:    `Force change the password of an account. Without --user the owner account is targeted.`,
	Example: `lunatv chpasswd -p <password> [-u <username>]`,
	Run: func(cmd *cobra.Command, args []string) {
		if NewPassword == "" {
			cmd.Help()
			return
		}
		if _, err := os.Stat(flags.DatabaseFile); os.IsNotExist(err) {
			cmd.Println("Database file does not exist.")
			return
		}
		user, err := chpasswdTarget(TargetUsername)
		if err != nil {
			cmd.Println("Account not found:", err)
			return
		}
		cmd.Println("Changing password for user:", user.Username)
		if err := accounts.ForceResetPassword(user.Username, NewPassword); err != nil {
			cmd.Println("Error:", err)
			return
		}
		cmd.Println("Password changed successfully, new password:", NewPassword)

		if err := accounts.DeleteAllSessions(); err != nil {
			cmd.Println("Unable to force logout of other devices:", err)
			return
		}

		cmd.Println("Please restart the server to apply the changes.")
	},
}

// chpasswdTarget resolves the account to reset. The users table holds
// every registrant, so the lookup is always by username, never by row
// position.
func chpasswdTarget(username string) (models.User, error) {
	if username == "" {
		username = config.OwnerUsername()
	}
	return accounts.GetUserByUsername(username)
}

func init() {
	ChpasswdCmd.PersistentFlags().StringVarP(&NewPassword, "password", "p", "", "New password")
	ChpasswdCmd.PersistentFlags().StringVarP(&TargetUsername, "user", "u", "", "Account to change (defaults to the owner)")
	RootCmd.AddCommand(ChpasswdCmd)
}
