package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/playto-dev/playto/shared/domain"
)

func likeMark(liked bool) string {
	if liked {
		return "♥"
	}
	return "♡"
}

func printPosts(w io.Writer, posts []domain.PostMetadata) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "no posts yet")
		return
	}
	for _, p := range posts {
		fmt.Fprintf(w, "#%d %s %d  @%s  %s\n", p.Id, likeMark(p.UserHasLiked), p.LikesCount, p.Author.Username, firstLine(p.Content))
	}
}

func printPost(w io.Writer, post domain.Post) {
	fmt.Fprintf(w, "#%d @%s  %s %d\n%s\n", post.Id, post.Author.Username, likeMark(post.UserHasLiked), post.LikesCount, post.Content)
	if len(post.Comments) == 0 {
		return
	}
	fmt.Fprintln(w)
	printComments(w, post.Comments, 0)
}

func printComments(w io.Writer, comments []*domain.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range comments {
		fmt.Fprintf(w, "%s└ #%d @%s %s %d  %s\n", indent, c.Id, c.Author.Username, likeMark(c.UserHasLiked), c.LikesCount, firstLine(c.Content))
		printComments(w, c.Replies, depth+1)
	}
}

func printLeaderboard(w io.Writer, entries []domain.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "nobody has received likes in the last 24 hours")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %-20s %d\n", i+1, e.Username, e.Score)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
