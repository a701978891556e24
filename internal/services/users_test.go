package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Create(f.ctx, "ash", "ash@pallet.town", "pikachu")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pikachu", user.Password)

	cases := []struct {
		username, email, password string
		want                      string
	}{
		{"", "a@b.c", "pw", "Cannot create User: Missing username."},
		{"misty", "", "pw", "Cannot create User: Missing email."},
		{"misty", "misty@cerulean.city", "", "Cannot create User: Missing password."},
		{"ash", "other@pallet.town", "pw", "Cannot create User: Username already exists."},
		{"gary", "ash@pallet.town", "pw", "Cannot create User: Email already exists."},
	}
	for _, tc := range cases {
		_, err := f.users.Create(f.ctx, tc.username, tc.email, tc.password)
		assert.EqualError(t, err, tc.want)
	}
}

func TestFindUser(t *testing.T) {
	f := newFixture(t)
	user, _ := f.user(t)

	got, err := f.users.FindByID(f.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	got, err = f.users.FindByUsername(f.ctx, user.Username)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.users.FindByID(f.ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.EqualError(t, err, "Cannot find User: User 999 does not exist.")

	_, err = f.users.FindByUsername(f.ctx, "nobody")
	assert.EqualError(t, err, "Cannot find User: User nobody does not exist.")
}

func TestUpdateAndDeleteUser(t *testing.T) {
	f := newFixture(t)
	user, actor := f.user(t)
	taken, other := f.user(t)

	_, err := f.users.Update(f.ctx, nil, user.ID, "new", "new@example.com")
	assert.EqualError(t, err, "Cannot edit User: You must be logged in.")

	_, err = f.users.Update(f.ctx, other, user.ID, "new", "new@example.com")
	assert.EqualError(t, err, "Cannot edit User: You cannot edit a user other than yourself!")

	_, err = f.users.Update(f.ctx, actor, user.ID, "", "new@example.com")
	assert.EqualError(t, err, "Cannot edit User: Missing username.")

	_, err = f.users.Update(f.ctx, actor, user.ID, "new", "")
	assert.EqualError(t, err, "Cannot edit User: Missing email.")

	_, err = f.users.Update(f.ctx, actor, user.ID, taken.Username, "new@example.com")
	assert.EqualError(t, err, "Cannot edit User: Username already exists.")

	updated, err := f.users.Update(f.ctx, actor, user.ID, "renamed", user.Email)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Username)
	assert.NotNil(t, updated.EditedAt)

	_, err = f.users.Delete(f.ctx, other, user.ID)
	assert.EqualError(t, err, "Cannot delete User: You cannot delete a user other than yourself!")

	deleted, err := f.users.Delete(f.ctx, actor, user.ID)
	require.NoError(t, err)
	assert.True(t, deleted.Status.IsDeleted())

	got, err := f.users.FindByID(f.ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Status.IsDeleted())
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	user, err := f.users.Create(f.ctx, "brock", "brock@pewter.city", "onix")
	require.NoError(t, err)

	got, err := f.users.Authenticate(f.ctx, "brock@pewter.city", "onix")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.users.Authenticate(f.ctx, "", "onix")
	assert.EqualError(t, err, "Cannot log in: Missing email.")
	_, err = f.users.Authenticate(f.ctx, "brock@pewter.city", "")
	assert.EqualError(t, err, "Cannot log in: Missing password.")
	_, err = f.users.Authenticate(f.ctx, "brock@pewter.city", "geodude")
	assert.EqualError(t, err, "Cannot log in: Invalid credentials.")
	_, err = f.users.Authenticate(f.ctx, "nobody@pewter.city", "onix")
	assert.EqualError(t, err, "Cannot log in: Invalid credentials.")

	_, err = f.users.Delete(f.ctx, &Actor{UserID: user.ID}, user.ID)
	require.NoError(t, err)
	_, err = f.users.Authenticate(f.ctx, "brock@pewter.city", "onix")
	assert.EqualError(t, err, "Cannot log in: User has been deleted.")
}
