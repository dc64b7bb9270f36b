package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post commands",
	}

	cmd.AddCommand(newPostListCmd())
	cmd.AddCommand(newPostGetCmd())
	cmd.AddCommand(newPostCreateCmd())

	return cmd
}

func newPostListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Post

			if err := client.Get("/posts", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPostGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <post-id>",
		Short: "Show a post and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PostDetail

			if err := client.Get("/posts/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPostCreateCmd() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"title":   title,
				"content": content,
			}
			var result Post

			if err := client.Post("/posts", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Post title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Post content (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newCommentCmd() *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "comment <post-id>",
		Short: "Comment on a post (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"text": text}
			var result Comment

			path := fmt.Sprintf("/posts/%s/comments", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Comment text (required)")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
