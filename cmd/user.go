package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"library-catalog/library"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registered users",
}

var (
	addUserID    int64
	addUserName  string
	addUserToken string
)

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := addUserToken
		if token == "" {
			var err error
			token, err = readToken(fmt.Sprintf("Enter token for %s: ", addUserName))
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
		}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.AddUser(addUserID, addUserName, token); err != nil {
				return err
			}
			fmt.Printf("Added user '%s' with ID %d\n", addUserName, addUserID)
			return nil
		})
	},
}

var userRemoveCmd = &cobra.Command{
	Use:   "rm <user-id>",
	Short: "Remove a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID: %s", args[0])
		}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.RemoveUser(id); err != nil {
				return err
			}
			fmt.Printf("Removed user %d\n", id)
			return nil
		})
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			users := lib.Users()
			if len(users) == 0 {
				fmt.Println("No users registered.")
				return nil
			}
			fmt.Printf("%-5s %-30s\n", "ID", "Name")
			fmt.Println(strings.Repeat("-", 36))
			for _, u := range users {
				fmt.Printf("%-5d %-30s\n", u.ID, truncateString(u.Name, 30))
			}
			return nil
		})
	},
}

var authToken string

var userAuthCmd = &cobra.Command{
	Use:   "auth <user-id>",
	Short: "Check a user's credential token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID: %s", args[0])
		}
		token := authToken
		if token == "" {
			token, err = readToken("Enter token: ")
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
		}
		return withLibrary(func(lib *library.Library) error {
			ok, err := lib.Authenticate(id, token)
			if err != nil {
				return err
			}
			if ok {
				fmt.Println("Token accepted.")
			} else {
				fmt.Println("Token rejected.")
			}
			return nil
		})
	},
}

func init() {
	userAddCmd.Flags().Int64Var(&addUserID, "id", 0, "user identifier")
	userAddCmd.Flags().StringVar(&addUserName, "name", "", "user name")
	userAddCmd.Flags().StringVar(&addUserToken, "token", "", "credential token (prompted if omitted)")
	userAddCmd.MarkFlagRequired("id")
	userAddCmd.MarkFlagRequired("name")

	userAuthCmd.Flags().StringVar(&authToken, "token", "", "credential token (prompted if omitted)")

	userCmd.AddCommand(userAddCmd, userRemoveCmd, userListCmd, userAuthCmd)
	rootCmd.AddCommand(userCmd)
}
