package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	_, actor := f.user(t)
	_, other := f.user(t)

	_, err := f.categories.Create(f.ctx, nil, actor.UserID, "Pokemon", "")
	assert.EqualError(t, err, "Cannot create Category: You must be logged in.")

	_, err = f.categories.Create(f.ctx, actor, 0, "Pokemon", "")
	assert.EqualError(t, err, "Cannot create Category: Invalid user ID.")

	_, err = f.categories.Create(f.ctx, other, actor.UserID, "Pokemon", "")
	assert.EqualError(t, err, "Cannot create Category: You cannot create a category for someone else!")

	_, err = f.categories.Create(f.ctx, actor, actor.UserID, " ", "")
	assert.EqualError(t, err, "Cannot create Category: Missing title.")

	category, err := f.categories.Create(f.ctx, actor, actor.UserID, "Pokemon", "Gotta catch em all")
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, category.Creator.ID)

	_, err = f.categories.Create(f.ctx, actor, actor.UserID, "Pokemon", "")
	assert.EqualError(t, err, "Cannot create Category: Title already exists.")

	list, err := f.categories.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pokemon", list[0].Title)
}

func TestEditAndDeleteCategory(t *testing.T) {
	f := newFixture(t)
	_, actor := f.user(t)
	_, other := f.user(t)
	category, err := f.categories.Create(f.ctx, actor, actor.UserID, "Pokemon", "")
	require.NoError(t, err)

	_, err = f.categories.Update(f.ctx, actor, 999, "x", "")
	assert.EqualError(t, err, "Cannot edit Category: Category does not exist with ID 999.")

	_, err = f.categories.Update(f.ctx, other, category.ID, "x", "")
	assert.EqualError(t, err, "Cannot edit Category: You cannot edit a category that you did not create!")

	_, err = f.categories.Update(f.ctx, actor, category.ID, "", "")
	assert.EqualError(t, err, "Cannot edit Category: Missing title.")

	updated, err := f.categories.Update(f.ctx, actor, category.ID, "Digimon", "digital")
	require.NoError(t, err)
	assert.Equal(t, "Digimon", updated.Title)

	_, err = f.categories.Delete(f.ctx, other, category.ID)
	assert.EqualError(t, err, "Cannot delete Category: You cannot delete a category that you did not create!")

	_, err = f.categories.Delete(f.ctx, actor, category.ID)
	require.NoError(t, err)

	list, err := f.categories.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := f.categories.FindByID(f.ctx, category.ID)
	require.NoError(t, err)
	assert.True(t, got.Status.IsDeleted())
}
