package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"agora/internal/config"
	"agora/internal/db"
	"agora/internal/models"
	"agora/internal/repository"
)

type fixture struct {
	ctx        context.Context
	store      repository.Store
	users      *UserService
	categories *CategoryService
	posts      *PostService
	comments   *CommentService
	votes      *VoteService
	bookmarks  *BookmarkService

	category *models.Category
	seq      int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.Open(config.DriverSQLite, ":memory:", nil)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	store := repository.NewStore(gdb)
	return &fixture{
		ctx:        context.Background(),
		store:      store,
		users:      NewUserService(store),
		categories: NewCategoryService(store),
		posts:      NewPostService(store),
		comments:   NewCommentService(store),
		votes:      NewVoteService(store),
		bookmarks:  NewBookmarkService(store),
	}
}

// user 直接写库，跳过 bcrypt
func (f *fixture) user(t *testing.T) (*models.User, *Actor) {
	t.Helper()
	f.seq++
	u := &models.User{
		Username: fmt.Sprintf("user%d", f.seq),
		Email:    fmt.Sprintf("user%d@example.com", f.seq),
		Password: "x",
	}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u, &Actor{UserID: u.ID, Username: u.Username}
}

func (f *fixture) defaultCategory(t *testing.T) *models.Category {
	t.Helper()
	if f.category != nil {
		return f.category
	}
	_, actor := f.user(t)
	c, err := f.categories.Create(f.ctx, actor, actor.UserID, "Pokemon", "All things Pokemon")
	require.NoError(t, err)
	f.category = c
	return c
}

func (f *fixture) post(t *testing.T, actor *Actor) *models.Post {
	t.Helper()
	category := f.defaultCategory(t)
	p, err := f.posts.Create(f.ctx, actor, CreatePostInput{
		UserID:     actor.UserID,
		CategoryID: category.ID,
		Title:      "Top 10 Pokemon",
		Type:       models.PostTypeText,
		Content:    "The best Pokemon community ever!",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) comment(t *testing.T, actor *Actor, postID uint, replyID *uint) *models.Comment {
	t.Helper()
	c, err := f.comments.Create(f.ctx, actor, CreateCommentInput{
		PostID:  postID,
		UserID:  actor.UserID,
		Content: "hello",
		ReplyID: replyID,
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) tally(t *testing.T, subject models.Subject, id uint) Tally {
	t.Helper()
	row, err := f.store.Subjects().Lock(f.ctx, subject, id)
	require.NoError(t, err)
	return Tally{Upvotes: row.Upvotes, Downvotes: row.Downvotes}
}
