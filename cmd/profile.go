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

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile and skills",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireLogin(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}

		update := types.UserUpdate{}
		changed := false
		setString := func(flag string, target **string) {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetString(flag)
				*target = &value
				changed = true
			}
		}
		setSlice := func(flag string, target **[]string) {
			if cmd.Flags().Changed(flag) {
				value, _ := cmd.Flags().GetStringSlice(flag)
				*target = &value
				changed = true
			}
		}
		setString("full-name", &update.FullName)
		setString("bio", &update.Bio)
		setString("job-title", &update.JobTitle)
		setString("location", &update.Location)
		setSlice("values", &update.PersonalValues)
		setSlice("engagements", &update.Engagements)

		if !changed {
			return errors.New("nothing to update, pass at least one flag")
		}
		if err := sess.UpdateProfile(cmd.Context(), update); err != nil {
			return errors.New(api.Message(err))
		}

		user, _ := sess.CurrentUser()
		fmt.Printf("profile updated: %s (@%s)\n", user.FullName, user.Username)
		return nil
	},
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage the soft skills on your profile",
}

var skillsAddCmd = &cobra.Command{
	Use:   "add SKILL",
	Short: "Add a soft skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireLogin(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}
		if err := sess.AddSkill(cmd.Context(), args[0]); err != nil {
			return errors.New(api.Message(err))
		}
		user, _ := sess.CurrentUser()
		fmt.Printf("skills: %v\n", user.SoftSkills)
		return nil
	},
}

var skillsRemoveCmd = &cobra.Command{
	Use:   "remove SKILL",
	Short: "Remove a soft skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireLogin(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}
		if err := sess.RemoveSkill(cmd.Context(), args[0]); err != nil {
			return errors.New(api.Message(err))
		}
		user, _ := sess.CurrentUser()
		fmt.Printf("skills: %v\n", user.SoftSkills)
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("full-name", "", "display name")
	profileUpdateCmd.Flags().String("bio", "", "profile bio")
	profileUpdateCmd.Flags().String("job-title", "", "current position")
	profileUpdateCmd.Flags().String("location", "", "declared location")
	profileUpdateCmd.Flags().StringSlice("values", nil, "personal values")
	profileUpdateCmd.Flags().StringSlice("engagements", nil, "engagements")

	skillsCmd.AddCommand(skillsAddCmd, skillsRemoveCmd)
	profileCmd.AddCommand(profileUpdateCmd, skillsCmd)
	rootCmd.AddCommand(profileCmd)
}
