/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ubuntoo-net/ubuntoo/config"
	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return errors.New("--email and --password are required")
		}

		sess := newSession(config.LoadConfig())
		if err := sess.Login(cmd.Context(), email, password); err != nil {
			return errors.New(api.Message(err))
		}

		user, _ := sess.CurrentUser()
		fmt.Printf("logged in as %s (@%s)\n", user.FullName, user.Username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := types.RegisterRequest{}
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Username, _ = cmd.Flags().GetString("username")
		req.FullName, _ = cmd.Flags().GetString("full-name")
		req.JobTitle, _ = cmd.Flags().GetString("job-title")
		req.Bio, _ = cmd.Flags().GetString("bio")
		if req.Email == "" || req.Password == "" || req.Username == "" || req.FullName == "" {
			return errors.New("--email, --password, --username and --full-name are required")
		}

		sess := newSession(config.LoadConfig())
		if err := sess.Register(cmd.Context(), req); err != nil {
			return errors.New(api.Message(err))
		}

		user, _ := sess.CurrentUser()
		fmt.Printf("welcome to UBUNTOO, %s (@%s)\n", user.FullName, user.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted credential",
	Run: func(cmd *cobra.Command, args []string) {
		sess := newSession(config.LoadConfig())
		sess.Logout()
		fmt.Println("logged out")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireLogin(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}

		user, _ := sess.CurrentUser()
		fmt.Printf("%s (@%s)\n", user.FullName, user.Username)
		if user.JobTitle != "" {
			fmt.Printf("  %s\n", user.JobTitle)
		}
		if user.Bio != "" {
			fmt.Printf("  %s\n", user.Bio)
		}
		fmt.Printf("  posts: %d  following: %d  badges: %v\n",
			user.PostsCount, user.FollowingCount, user.Badges)
		if len(user.SoftSkills) > 0 {
			fmt.Printf("  skills: %v\n", user.SoftSkills)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringP("email", "e", "", "account email")
	loginCmd.Flags().StringP("password", "p", "", "account password")

	registerCmd.Flags().StringP("email", "e", "", "account email")
	registerCmd.Flags().StringP("password", "p", "", "account password")
	registerCmd.Flags().StringP("username", "u", "", "unique handle")
	registerCmd.Flags().String("full-name", "", "display name")
	registerCmd.Flags().String("job-title", "", "current position")
	registerCmd.Flags().String("bio", "", "profile bio")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
