package services

import "agora/internal/models"

// ThreadNode 评论及其所有回复构成的子树
type ThreadNode struct {
	Comment *models.Comment
	Replies []*ThreadNode
}

// Forest 把同一帖子的评论组装成树，comments 需按创建顺序排列。
// 顶层评论（或父评论不在列表中的评论）作为根，回复按创建顺序挂在父评论下。
func Forest(comments []*models.Comment) []*ThreadNode {
	nodes := make(map[uint]*ThreadNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &ThreadNode{Comment: c}
	}

	var roots []*ThreadNode
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ReplyID != nil {
			if parent, ok := nodes[*c.ReplyID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Subtree 返回以 id 为根的子树
func Subtree(comments []*models.Comment, id uint) (*ThreadNode, bool) {
	for _, root := range Forest(comments) {
		if n := root.find(id); n != nil {
			return n, true
		}
	}
	return nil, false
}

func (n *ThreadNode) find(id uint) *ThreadNode {
	stack := []*ThreadNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Comment.ID == id {
			return cur
		}
		stack = append(stack, cur.Replies...)
	}
	return nil
}

// Flatten walks the subtree depth-first in pre-order: the node, then each
// reply in creation order followed by that reply's own subtree.
func (n *ThreadNode) Flatten() []*models.Comment {
	var out []*models.Comment
	stack := []*ThreadNode{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur.Comment)
		for i := len(cur.Replies) - 1; i >= 0; i-- {
			stack = append(stack, cur.Replies[i])
		}
	}
	return out
}

// Size 子树中的评论数（含自身）
func (n *ThreadNode) Size() int {
	size := 1
	for _, r := range n.Replies {
		size += r.Size()
	}
	return size
}
