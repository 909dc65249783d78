/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ubuntoo-net/ubuntoo/config"
	"github.com/ubuntoo-net/ubuntoo/internal/api"
	"github.com/ubuntoo-net/ubuntoo/internal/resource"
	"github.com/ubuntoo-net/ubuntoo/types"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the community feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := requireLogin(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}

		feed := resource.NewPostFeed(sess.API())
		if err := feed.Refresh(cmd.Context()); err != nil {
			return errors.New(api.Message(err))
		}

		posts := feed.Items()
		if len(posts) == 0 {
			fmt.Println("no posts yet, be the first to publish")
			return nil
		}
		for _, post := range posts {
			printPost(post)
		}
		return nil
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a post to the community feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		content, _ := cmd.Flags().GetString("content")
		postType, _ := cmd.Flags().GetString("type")
		tags, _ := cmd.Flags().GetStringSlice("tags")
		if strings.TrimSpace(content) == "" {
			return errors.New("--content is required")
		}

		sess, err := requireLogin(cmd.Context(), config.LoadConfig())
		if err != nil {
			return err
		}

		feed := resource.NewPostFeed(sess.API())
		err = feed.Publish(cmd.Context(), types.PostCreate{
			Content:  content,
			PostType: types.PostType(postType),
			Tags:     tags,
		})
		if err != nil {
			return errors.New(api.Message(err))
		}

		fmt.Printf("published, %d posts in the feed\n", len(feed.Items()))
		return nil
	},
}

func printPost(post types.Post) {
	author := "unknown"
	if post.User != nil {
		author = fmt.Sprintf("%s (@%s)", post.User.FullName, post.User.Username)
	}
	fmt.Printf("[%s] %s — %s\n", post.PostType, author, post.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  %s\n", post.Content)
	if len(post.Tags) > 0 {
		fmt.Printf("  #%s\n", strings.Join(post.Tags, " #"))
	}
	fmt.Printf("  likes: %d  comments: %d  shares: %d\n\n",
		post.LikesCount, post.CommentsCount, post.SharesCount)
}

func init() {
	publishCmd.Flags().StringP("content", "c", "", "post content")
	publishCmd.Flags().StringP("type", "t", string(types.PostIdea), "post type: idea, action, testimony, challenge, success")
	publishCmd.Flags().StringSlice("tags", nil, "comma-separated tags")

	rootCmd.AddCommand(feedCmd, publishCmd)
}
