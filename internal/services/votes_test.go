package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agora/internal/models"
)

func TestUpVoteThenDownVoteFlips(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	_, voter := f.user(t)
	post := f.post(t, author)

	tally, err := f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, voter.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Upvotes: 1, Downvotes: 0}, tally)

	tally, err = f.votes.DownVote(f.ctx, models.SubjectPost, post.ID, voter.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Upvotes: 0, Downvotes: 1}, tally)

	dir, ok, err := f.votes.Direction(f.ctx, models.SubjectPost, post.ID, voter.UserID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.Down, dir)
}

func TestSecondVoteSameDirectionFails(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)
	comment := f.comment(t, author, post.ID, nil)

	_, err := f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	require.NoError(t, err)
	_, err = f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.EqualError(t, err, "Cannot up vote Post: Post has already been up voted.")

	_, err = f.votes.DownVote(f.ctx, models.SubjectComment, comment.ID, author.UserID)
	require.NoError(t, err)
	_, err = f.votes.DownVote(f.ctx, models.SubjectComment, comment.ID, author.UserID)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.EqualError(t, err, "Cannot down vote Comment: Comment has already been down voted.")

	assert.Equal(t, Tally{Upvotes: 1}, f.tally(t, models.SubjectPost, post.ID))
	assert.Equal(t, Tally{Downvotes: 1}, f.tally(t, models.SubjectComment, comment.ID))
}

func TestUnvote(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)

	_, err := f.votes.Unvote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	assert.ErrorIs(t, err, ErrNotYetVoted)
	assert.EqualError(t, err, "Cannot unvote Post: Post must first be up or down voted.")

	_, err = f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	require.NoError(t, err)
	tally, err := f.votes.Unvote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)

	_, ok, err := f.votes.Direction(f.ctx, models.SubjectPost, post.ID, author.UserID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.votes.Unvote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	assert.ErrorIs(t, err, ErrNotYetVoted)

	_, err = f.votes.DownVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	require.NoError(t, err)
	tally, err = f.votes.Unvote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
}

func TestVotesFromSeveralUsers(t *testing.T) {
	f := newFixture(t)
	_, u1 := f.user(t)
	_, u2 := f.user(t)
	post := f.post(t, u1)

	_, err := f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, u1.UserID)
	require.NoError(t, err)
	tally, err := f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, u2.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Upvotes: 2, Downvotes: 0}, tally)

	tally, err = f.votes.DownVote(f.ctx, models.SubjectPost, post.ID, u1.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Upvotes: 1, Downvotes: 1}, tally)

	tally, err = f.votes.Unvote(f.ctx, models.SubjectPost, post.ID, u2.UserID)
	require.NoError(t, err)
	assert.Equal(t, Tally{Upvotes: 0, Downvotes: 1}, tally)
}

func TestVoteRejectsMissingAndDeletedSubjects(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)

	_, err := f.votes.UpVote(f.ctx, models.SubjectPost, 999, author.UserID)
	assert.ErrorIs(t, err, ErrSubjectNotFound)
	assert.EqualError(t, err, "Cannot up vote Post: Post does not exist with ID 999.")

	_, err = f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.EqualError(t, err, "Cannot up vote Post: User does not exist with ID 999.")

	_, err = f.posts.Delete(f.ctx, author, post.ID)
	require.NoError(t, err)
	_, err = f.votes.DownVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
	assert.ErrorIs(t, err, ErrDeleted)
	assert.EqualError(t, err, "Cannot down vote Post: Post has been deleted.")
}

func TestConcurrentUpVotesRecordOnce(t *testing.T) {
	f := newFixture(t)
	_, author := f.user(t)
	post := f.post(t, author)

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.votes.UpVote(f.ctx, models.SubjectPost, post.ID, author.UserID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			assert.ErrorIs(t, err, ErrAlreadyVoted)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, Tally{Upvotes: 1}, f.tally(t, models.SubjectPost, post.ID))
}
