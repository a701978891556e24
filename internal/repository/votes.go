package repository

import (
	"context"

	"gorm.io/gorm"

	"agora/internal/models"
)

// VoteRepository is the vote ledger. The (subject_type, subject_id, user_id)
// unique index is what keeps one vote per user per subject; Create reports
// a lost race as ErrDuplicate.
type VoteRepository interface {
	Find(ctx context.Context, subject models.Subject, subjectID, userID uint) (*models.Vote, error)
	Create(ctx context.Context, vote *models.Vote) error
	// Flip changes the direction of vote id from -> to. It reports false if
	// the row no longer holds from.
	Flip(ctx context.Context, id uint, from, to models.Direction) (bool, error)
	// Delete removes vote id if it still holds dir.
	Delete(ctx context.Context, id uint, dir models.Direction) (bool, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository { return &voteRepository{db: db} }

func (r *voteRepository) Find(ctx context.Context, subject models.Subject, subjectID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ? AND user_id = ?", subject, subjectID, userID).
		Take(&vote).Error
	if err != nil {
		return nil, translate(err)
	}
	return &vote, nil
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	return translate(r.db.WithContext(ctx).Create(vote).Error)
}

func (r *voteRepository) Flip(ctx context.Context, id uint, from, to models.Direction) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("id = ? AND direction = ?", id, from).
		Update("direction", to)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *voteRepository) Delete(ctx context.Context, id uint, dir models.Direction) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND direction = ?", id, dir).
		Delete(&models.Vote{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}
