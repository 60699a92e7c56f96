package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/playto-dev/playto/frontend/internal/feed"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/spf13/cobra"
)

func parseId(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newFeedCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := feed.NewFeedView(s.client)
			if err := view.SetViewer(cmd.Context(), s.viewer); err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), view.Posts())
			return nil
		},
	}
}

func newShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <post-id>",
		Short: "Show a post with its comment thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}
			view := feed.NewPostView(s.client, id)
			if err := view.SetViewer(cmd.Context(), s.viewer); err != nil {
				return err
			}
			post, _ := view.Post()
			printPost(cmd.OutOrStdout(), post)
			return nil
		},
	}
}

func newPostCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "post <content...>",
		Short: "Publish a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := feed.NewFeedView(s.client)
			if err := view.SetViewer(cmd.Context(), s.viewer); err != nil {
				return err
			}
			post, err := view.SubmitPost(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created post #%d\n", post.Id)
			return nil
		},
	}
}

func newCommentCmd(s *session) *cobra.Command {
	var parent int64
	cmd := &cobra.Command{
		Use:   "comment <post-id> <content...>",
		Short: "Comment on a post, or reply with --parent",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			postId, err := parseId(args[0])
			if err != nil {
				return err
			}
			var parentId *domain.CommentId
			if parent != 0 {
				parentId = &parent
			}
			view := feed.NewPostView(s.client, postId)
			if err := view.SetViewer(cmd.Context(), s.viewer); err != nil {
				return err
			}
			comment, err := view.SubmitComment(cmd.Context(), parentId, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created comment #%d\n", comment.Id)
			return nil
		},
	}
	cmd.Flags().Int64Var(&parent, "parent", 0, "id of the comment to reply to")
	return cmd
}

func newLikeCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:       "like <post|comment> <id>",
		Short:     "Toggle your like on a post or comment",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(domain.SubjectPost), string(domain.SubjectComment)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.SubjectKind(args[0])
			if !kind.Valid() {
				return fmt.Errorf("unknown kind %q, want post or comment", args[0])
			}
			id, err := parseId(args[1])
			if err != nil {
				return err
			}
			status, err := s.client.ToggleVote(cmd.Context(), s.viewer.Token, kind, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s #%d\n", status, kind, id)
			return nil
		},
	}
}

func newLeaderboardCmd(s *session) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Top authors by likes received in the last 24 hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !watch {
				entries, err := s.client.Leaderboard(cmd.Context())
				if err != nil {
					return err
				}
				printLeaderboard(out, entries)
				return nil
			}

			poller := feed.NewLeaderboardPoller(s.client, interval)
			poller.OnUpdate = func(entries []domain.LeaderboardEntry) {
				fmt.Fprintf(out, "-- %s\n", time.Now().Format(time.TimeOnly))
				printLeaderboard(out, entries)
			}
			poller.OnError = func(err error) {
				fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed: %v\n", err)
			}
			poller.Start(cmd.Context())
			<-cmd.Context().Done()
			poller.Stop()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", feed.DefaultPollInterval, "poll interval for --watch")
	return cmd
}
