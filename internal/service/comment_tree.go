package service

import "hearth/internal/models"

// CommentNode is a comment with its direct replies nested beneath it.
type CommentNode struct {
	*models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree assembles a flat, created_at-ascending comment slice into
// a forest of threads in two passes and O(n) total work.
//
// The first pass wraps every comment in a node indexed by id. The second
// attaches each node to its parent, or to the root set when it has none.
// Input order is preserved at every level, so siblings stay oldest-first
// without re-sorting. A comment whose parent id points at a comment missing
// from the input is dropped: there is nowhere sensible to hang it, and
// promoting it to a root would misrepresent the thread.
func BuildCommentTree(comments []*models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}
