package main

import (
	"fmt"
	"os"

	"github.com/playto-dev/playto/frontend/internal/apiclient"
	"github.com/playto-dev/playto/frontend/internal/feed"
	"github.com/playto-dev/playto/shared/logger"
	"github.com/spf13/cobra"
)

// session is what every subcommand works with once the root has logged in.
type session struct {
	apiURL   string
	username string
	password string
	verbose  bool

	client *apiclient.APIClient
	viewer feed.Viewer
}

func newRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:           "feedctl",
		Short:         "Browse and interact with the community feed",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.connect(cmd)
		},
	}

	defaultAPI := os.Getenv("PLAYTO_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	flags := root.PersistentFlags()
	flags.StringVar(&s.apiURL, "api", defaultAPI, "API base URL (env PLAYTO_API)")
	flags.StringVarP(&s.username, "user", "u", "", "log in as this user")
	flags.StringVarP(&s.password, "password", "p", "", "password for --user")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newFeedCmd(s),
		newShowCmd(s),
		newPostCmd(s),
		newCommentCmd(s),
		newLikeCmd(s),
		newLeaderboardCmd(s),
	)
	return root
}

func (s *session) connect(cmd *cobra.Command) error {
	level := "warn"
	if s.verbose {
		level = "debug"
	}
	logger.InitializeTo(cmd.ErrOrStderr(), level, false)

	s.client = apiclient.New(s.apiURL)
	if s.username == "" {
		return nil
	}
	token, err := s.client.Login(cmd.Context(), s.username, s.password)
	if err != nil {
		return fmt.Errorf("login as %s: %w", s.username, err)
	}
	s.viewer = feed.Viewer{Username: s.username, Token: token}
	return nil
}
