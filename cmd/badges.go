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
	"github.com/ubuntoo-net/ubuntoo/internal/resource"
	"github.com/ubuntoo-net/ubuntoo/internal/session"
	"github.com/ubuntoo-net/ubuntoo/types"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show and nominate community badges",
}

var badgesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's badges (defaults to your own)",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		_, wall, err := badgeWall(cmd, userID)
		if err != nil {
			return err
		}
		if err := wall.Refresh(cmd.Context()); err != nil {
			return errors.New(api.Message(err))
		}

		badges := wall.Items()
		if len(badges) == 0 {
			fmt.Println("no badges yet")
			return nil
		}
		for _, badge := range badges {
			fmt.Printf("%s  %s [%s]\n", badge.ID, badge.BadgeType, badge.Status)
			fmt.Printf("  %s — for: %d, against: %d\n", badge.Title, badge.VotesFor, badge.VotesAgainst)
		}
		return nil
	},
}

var badgesNominateCmd = &cobra.Command{
	Use:   "nominate",
	Short: "Nominate a badge for community validation",
	RunE: func(cmd *cobra.Command, args []string) error {
		badgeType, _ := cmd.Flags().GetString("type")
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		evidence, _ := cmd.Flags().GetString("evidence")
		userID, _ := cmd.Flags().GetString("user")
		if title == "" || description == "" {
			return errors.New("--title and --description are required")
		}

		_, wall, err := badgeWall(cmd, userID)
		if err != nil {
			return err
		}

		err = wall.Nominate(cmd.Context(), types.BadgeCreate{
			BadgeType:   types.BadgeType(badgeType),
			Title:       title,
			Description: description,
			EvidenceURL: evidence,
		})
		if err != nil {
			return errors.New(api.Message(err))
		}
		fmt.Println("nomination submitted, pending community votes")
		return nil
	},
}

var badgesVoteCmd = &cobra.Command{
	Use:   "vote BADGE_ID",
	Short: "Vote on a pending badge nomination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		against, _ := cmd.Flags().GetBool("against")
		userID, _ := cmd.Flags().GetString("user")

		_, wall, err := badgeWall(cmd, userID)
		if err != nil {
			return err
		}

		if err := wall.Vote(cmd.Context(), args[0], !against); err != nil {
			return errors.New(api.Message(err))
		}
		fmt.Println("vote recorded")
		return nil
	},
}

// badgeWall builds a badge controller over userID, defaulting to the
// authenticated user.
func badgeWall(cmd *cobra.Command, userID string) (*session.Session, *resource.BadgeWall, error) {
	sess, err := requireLogin(cmd.Context(), config.LoadConfig())
	if err != nil {
		return nil, nil, err
	}
	if userID == "" {
		user, _ := sess.CurrentUser()
		userID = user.ID
	}
	return sess, resource.NewBadgeWall(sess.API(), userID), nil
}

func init() {
	badgesListCmd.Flags().String("user", "", "user id to list badges for")

	badgesNominateCmd.Flags().String("type", string(types.BadgeCollaboration), "badge type: empathy, leadership, resilience, creativity, communication, collaboration, innovation")
	badgesNominateCmd.Flags().String("title", "", "nomination title")
	badgesNominateCmd.Flags().String("description", "", "why this badge is deserved")
	badgesNominateCmd.Flags().String("evidence", "", "URL supporting the nomination")
	badgesNominateCmd.Flags().String("user", "", "user id to nominate for, defaults to yourself")

	badgesVoteCmd.Flags().Bool("against", false, "vote against the nomination")
	badgesVoteCmd.Flags().String("user", "", "owner of the badge wall being voted on")

	badgesCmd.AddCommand(badgesListCmd, badgesNominateCmd, badgesVoteCmd)
	rootCmd.AddCommand(badgesCmd)
}
