package service

import (
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/logger"
)

// assembleTree nests the flat comment list of postId. flat must be ordered by
// creation; replies keep that order. The result is built from an arena of
// nodes and a parent to children index, walked breadth first from the roots,
// so comments whose parent is absent and comments on a parent cycle are never
// reached and are left out.
func assembleTree(postId domain.PostId, flat []domain.Comment, liked map[domain.CommentId]bool) []*domain.Comment {
	arena := make(map[domain.CommentId]*domain.Comment, len(flat))
	children := make(map[domain.CommentId][]domain.CommentId)
	var rootIds []domain.CommentId

	for i := range flat {
		c := flat[i]
		if c.PostId != postId {
			continue
		}
		if _, dup := arena[c.Id]; dup {
			continue
		}
		c.UserHasLiked = liked[c.Id]
		c.Replies = []*domain.Comment{}
		arena[c.Id] = &c

		if c.ParentId == nil {
			rootIds = append(rootIds, c.Id)
		} else {
			children[*c.ParentId] = append(children[*c.ParentId], c.Id)
		}
	}

	roots := make([]*domain.Comment, 0, len(rootIds))
	visited := make(map[domain.CommentId]bool, len(arena))
	queue := make([]*domain.Comment, 0, len(arena))
	for _, id := range rootIds {
		node := arena[id]
		visited[id] = true
		roots = append(roots, node)
		queue = append(queue, node)
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, childId := range children[node.Id] {
			if visited[childId] {
				continue
			}
			visited[childId] = true
			child := arena[childId]
			node.Replies = append(node.Replies, child)
			queue = append(queue, child)
		}
	}

	if dropped := len(arena) - len(visited); dropped > 0 {
		commentTreeDropped.Add(float64(dropped))
		logger.Log.Warn("dropped unreachable comments", "component", "tree", "post_id", postId, "dropped", dropped)
	}
	return roots
}
