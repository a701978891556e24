package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestCommentThreadScenario(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)

	c1 := f.comment(t, author, post.ID, nil)
	all, err := f.comments.FindByPost(f.ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c1.ID}, ids(all))

	c2 := f.comment(t, author, post.ID, uintPtr(c1.ID))
	require.NotNil(t, c2.ReplyID)
	assert.Equal(t, c1.ID, *c2.ReplyID)

	thread, err := f.comments.ThreadList(f.ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c1.ID, c2.ID}, ids(thread))

	thread, err = f.comments.ThreadList(f.ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c2.ID}, ids(thread))
}

func TestCommentThreadCounts(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)

	a := f.comment(t, author, post.ID, nil)
	b := f.comment(t, author, post.ID, uintPtr(a.ID))
	c := f.comment(t, author, post.ID, uintPtr(b.ID))
	d := f.comment(t, author, post.ID, uintPtr(a.ID))

	for id, want := range map[uint]int{a.ID: 4, b.ID: 2, c.ID: 1, d.ID: 1} {
		thread, err := f.comments.ThreadList(f.ctx, id)
		require.NoError(t, err)
		assert.Len(t, thread, want, "comment %d", id)
	}

	thread, err := f.comments.ThreadList(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.ID, b.ID, c.ID, d.ID}, ids(thread))

	forest, err := f.comments.PostForest(f.ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, 4, forest[0].Size())
}

func TestCreateCommentValidation(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	_, other := f.user(t)
	post := f.post(t, author)
	otherPost := f.post(t, author)
	foreign := f.comment(t, author, otherPost.ID, nil)

	cases := []struct {
		name  string
		actor *Actor
		in    CreateCommentInput
		want  string
		code  error
	}{
		{"not logged in", nil, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "x"},
			"Cannot create Comment: You must be logged in.", ErrUnauthenticated},
		{"someone else", other, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "x"},
			"Cannot create Comment: You cannot create a comment for someone else!", ErrForbidden},
		{"missing post", author, CreateCommentInput{PostID: 999, UserID: author.UserID, Content: "x"},
			"Cannot create Comment: Post does not exist with ID 999.", ErrPostNotFound},
		{"blank content", author, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "  "},
			"Cannot create Comment: Missing content.", ErrMissingContent},
		{"missing reply", author, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "x", ReplyID: uintPtr(999)},
			"Cannot create Comment: Comment does not exist with ID 999.", ErrCommentNotFound},
		{"reply on other post", author, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "x", ReplyID: uintPtr(foreign.ID)},
			"Cannot create Comment: Reply must belong to the same post.", ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.comments.Create(f.ctx, tc.actor, tc.in)
			assert.ErrorIs(t, err, tc.code)
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestDeleteCommentDoesNotCascade(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	_, other := f.user(t)
	post := f.post(t, author)
	parent := f.comment(t, author, post.ID, nil)
	child := f.comment(t, author, post.ID, uintPtr(parent.ID))

	_, err := f.comments.Delete(f.ctx, other, parent.ID)
	assert.EqualError(t, err, "Cannot delete Comment: You cannot delete a comment that you did not create!")

	deleted, err := f.comments.Delete(f.ctx, author, parent.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Status.IsDeleted())

	got, err := f.comments.FindByID(f.ctx, child.ID)
	require.NoError(t, err)
	assert.False(t, got.Status.IsDeleted())

	thread, err := f.comments.ThreadList(f.ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.True(t, thread[0].Status.IsDeleted())

	_, err = f.comments.Update(f.ctx, author, parent.ID, "again")
	assert.ErrorIs(t, err, ErrDeleted)

	_, err = f.comments.Create(f.ctx, author, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "x", ReplyID: uintPtr(parent.ID)})
	assert.ErrorIs(t, err, ErrDeleted)
}

func TestUpdateComment(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)
	c := f.comment(t, author, post.ID, nil)

	_, err := f.comments.Update(f.ctx, author, c.ID, "")
	assert.EqualError(t, err, "Cannot edit Comment: Missing content.")

	_, err = f.comments.Update(f.ctx, author, 999, "x")
	assert.EqualError(t, err, "Cannot edit Comment: Comment does not exist with ID 999.")

	updated, err := f.comments.Update(f.ctx, author, c.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.NotNil(t, updated.EditedAt)

	got, err := f.comments.FindByID(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	_, err = f.comments.FindByID(f.ctx, 999)
	assert.EqualError(t, err, "Cannot find Comment: Comment does not exist with ID 999.")
}

func TestCreateCommentByDeletedUser(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)

	_, err := f.users.Delete(f.ctx, author, author.UserID)
	require.NoError(t, err)

	_, err = f.comments.Create(f.ctx, author, CreateCommentInput{PostID: post.ID, UserID: author.UserID, Content: "still here?"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.EqualError(t, err, "Cannot create Comment: User has been deleted.")

	_, err = f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
