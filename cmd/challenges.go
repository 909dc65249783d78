/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ubuntoo-net/ubuntoo/config"
	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/internal/resource"
	"github.com/ubuntoo-net/ubuntoo/internal/session"
	"github.com/ubuntoo-net/ubuntoo/types"
)

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Browse and join community challenges",
}

var challengesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active challenges",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, board, err := challengeBoard(cmd)
		if err != nil {
			return err
		}
		if err := board.Refresh(cmd.Context()); err != nil {
			return errors.New(api.Message(err))
		}

		challenges := board.Items()
		if len(challenges) == 0 {
			fmt.Println("no active challenges")
			return nil
		}
		now := time.Now()
		for _, challenge := range challenges {
			capacity := "open"
			if challenge.MaxParticipants != nil {
				capacity = fmt.Sprintf("%d/%d", len(challenge.Participants), *challenge.MaxParticipants)
			} else {
				capacity = fmt.Sprintf("%d joined", len(challenge.Participants))
			}
			fmt.Printf("%s  [%s] %s\n", challenge.ID, challenge.Category, challenge.Title)
			fmt.Printf("  %d days left, %s, rewards: %v\n",
				challenge.DaysLeft(now), capacity, challenge.Rewards)
		}
		return nil
	},
}

var challengesProposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Propose a new challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		days, _ := cmd.Flags().GetInt("days")
		maxParticipants, _ := cmd.Flags().GetInt("max-participants")
		rewards, _ := cmd.Flags().GetStringSlice("rewards")
		if title == "" || description == "" {
			return errors.New("--title and --description are required")
		}

		_, board, err := challengeBoard(cmd)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		create := types.ChallengeCreate{
			Title:       title,
			Description: description,
			Category:    types.ChallengeCategory(category),
			StartDate:   now,
			EndDate:     now.AddDate(0, 0, days),
			Rewards:     rewards,
		}
		if maxParticipants > 0 {
			create.MaxParticipants = &maxParticipants
		}

		if err := board.Propose(cmd.Context(), create); err != nil {
			return errors.New(api.Message(err))
		}
		fmt.Printf("challenge proposed, %d active\n", len(board.Items()))
		return nil
	},
}

var challengesJoinCmd = &cobra.Command{
	Use:   "join CHALLENGE_ID",
	Short: "Join a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, board, err := challengeBoard(cmd)
		if err != nil {
			return err
		}
		// Refresh first so the date/capacity guards see the current
		// participant list.
		if err := board.Refresh(cmd.Context()); err != nil {
			return errors.New(api.Message(err))
		}

		user, _ := sess.CurrentUser()
		if err := board.Join(cmd.Context(), args[0], user.ID); err != nil {
			return errors.New(api.Message(err))
		}
		fmt.Println("joined")
		return nil
	},
}

func challengeBoard(cmd *cobra.Command) (*session.Session, *resource.ChallengeBoard, error) {
	sess, err := requireLogin(cmd.Context(), config.LoadConfig())
	if err != nil {
		return nil, nil, err
	}
	return sess, resource.NewChallengeBoard(sess.API()), nil
}

func init() {
	challengesProposeCmd.Flags().String("title", "", "challenge title")
	challengesProposeCmd.Flags().String("description", "", "challenge description")
	challengesProposeCmd.Flags().String("category", string(types.CategoryInnovation), "category: innovation, environment, mutual-aid, ethics, other")
	challengesProposeCmd.Flags().Int("days", 30, "duration in days")
	challengesProposeCmd.Flags().Int("max-participants", 0, "participant cap, 0 for none")
	challengesProposeCmd.Flags().StringSlice("rewards", nil, "badge types awarded on completion")

	challengesCmd.AddCommand(challengesListCmd, challengesProposeCmd, challengesJoinCmd)
	rootCmd.AddCommand(challengesCmd)
}
