package handlers

import (
	"time"

	"agora/internal/models"
	"agora/internal/services"
	"agora/internal/utils"
)

// UserView 用户资料，Email 只返回给本人
type UserView struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// AuthorView 嵌套在帖子、评论、分类里的公开作者信息
type AuthorView struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	DeletedAt *time.Time `json:"deletedAt"`
}

type CategoryView struct {
	ID          uint        `json:"id"`
	CreatedBy   AuthorView  `json:"createdBy"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	EditedAt    *time.Time  `json:"editedAt"`
	DeletedAt   *time.Time  `json:"deletedAt"`
	Posts       []*PostView `json:"posts,omitempty"`
}

type PostView struct {
	ID           uint            `json:"id"`
	User         AuthorView      `json:"user"`
	Category     CategorySummary `json:"category"`
	Title        string          `json:"title"`
	Type         models.PostType `json:"type"`
	Content      string          `json:"content"`
	ContentHTML  string          `json:"contentHtml"`
	Upvotes      int             `json:"upvotes"`
	Downvotes    int             `json:"downvotes"`
	CreatedAt    time.Time       `json:"createdAt"`
	EditedAt     *time.Time      `json:"editedAt"`
	DeletedAt    *time.Time      `json:"deletedAt"`
	Comments     []*CommentView  `json:"comments,omitempty"`
	IsBookmarked *bool           `json:"isBookmarked,omitempty"`
}

type CategorySummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type PostSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type ReplySummary struct {
	ID   uint       `json:"id"`
	User AuthorView `json:"user"`
}

type CommentView struct {
	ID          uint           `json:"id"`
	User        AuthorView     `json:"user"`
	Post        PostSummary    `json:"post"`
	Reply       *ReplySummary  `json:"reply"`
	Content     string         `json:"content"`
	ContentHTML string         `json:"contentHtml"`
	Upvotes     int            `json:"upvotes"`
	Downvotes   int            `json:"downvotes"`
	CreatedAt   time.Time      `json:"createdAt"`
	EditedAt    *time.Time     `json:"editedAt"`
	DeletedAt   *time.Time     `json:"deletedAt"`
	Replies     []*CommentView `json:"replies"`
}

func deletedAt(s models.Status) *time.Time {
	if at, ok := s.DeletedAt(); ok {
		return &at
	}
	return nil
}

// renderContent 已删除的内容不再渲染
func renderContent(content string, s models.Status) string {
	if s.IsDeleted() {
		return ""
	}
	return utils.RenderMarkdown(content)
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		EditedAt:  u.EditedAt,
		DeletedAt: deletedAt(u.Status),
	}
}

// newSelfView 本人的资料，带 Email
func newSelfView(u *models.User) UserView {
	v := newUserView(u)
	v.Email = u.Email
	return v
}

func newAuthorView(u *models.User) AuthorView {
	return AuthorView{ID: u.ID, Username: u.Username, DeletedAt: deletedAt(u.Status)}
}

func newCategoryView(c *models.Category) *CategoryView {
	return &CategoryView{
		ID:          c.ID,
		CreatedBy:   newAuthorView(&c.Creator),
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		EditedAt:    c.EditedAt,
		DeletedAt:   deletedAt(c.Status),
	}
}

func newPostView(p *models.Post) *PostView {
	return &PostView{
		ID:          p.ID,
		User:        newAuthorView(&p.User),
		Category:    CategorySummary{ID: p.Category.ID, Title: p.Category.Title},
		Title:       p.Title,
		Type:        p.Type,
		Content:     p.Content,
		ContentHTML: renderContent(p.Content, p.Status),
		Upvotes:     p.Upvotes,
		Downvotes:   p.Downvotes,
		CreatedAt:   p.CreatedAt,
		EditedAt:    p.EditedAt,
		DeletedAt:   deletedAt(p.Status),
	}
}

func newPostViews(posts []*models.Post) []*PostView {
	out := make([]*PostView, len(posts))
	for i, p := range posts {
		out[i] = newPostView(p)
	}
	return out
}

func newCommentView(c *models.Comment) *CommentView {
	v := &CommentView{
		ID:          c.ID,
		User:        newAuthorView(&c.User),
		Post:        PostSummary{ID: c.PostID, Title: c.Post.Title},
		Content:     c.Content,
		ContentHTML: renderContent(c.Content, c.Status),
		Upvotes:     c.Upvotes,
		Downvotes:   c.Downvotes,
		CreatedAt:   c.CreatedAt,
		EditedAt:    c.EditedAt,
		DeletedAt:   deletedAt(c.Status),
		Replies:     []*CommentView{},
	}
	if c.ReplyID != nil {
		v.Reply = &ReplySummary{ID: *c.ReplyID}
		if c.Reply != nil {
			v.Reply.User = newAuthorView(&c.Reply.User)
		}
	}
	return v
}

func newCommentViews(comments []*models.Comment) []*CommentView {
	out := make([]*CommentView, len(comments))
	for i, c := range comments {
		out[i] = newCommentView(c)
	}
	return out
}

// newThreadView 递归生成嵌套的回复树
func newThreadView(n *services.ThreadNode) *CommentView {
	v := newCommentView(n.Comment)
	for _, r := range n.Replies {
		v.Replies = append(v.Replies, newThreadView(r))
	}
	return v
}

func newForestView(nodes []*services.ThreadNode) []*CommentView {
	out := make([]*CommentView, len(nodes))
	for i, n := range nodes {
		out[i] = newThreadView(n)
	}
	return out
}
