package services

import (
	"context"
	"errors"
	"fmt"

	"agora/internal/models"
	"agora/internal/repository"
)

// Tally 投票后对象上的计数
type Tally struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// VoteService 投票账本：每个 (subject, user) 至多一条记录，
// 计数列与账本在同一事务内更新。
type VoteService struct {
	store repository.Store
}

func NewVoteService(store repository.Store) *VoteService {
	return &VoteService{store: store}
}

func (s *VoteService) UpVote(ctx context.Context, subject models.Subject, subjectID, userID uint) (Tally, error) {
	return s.cast(ctx, subject, subjectID, userID, models.Up)
}

func (s *VoteService) DownVote(ctx context.Context, subject models.Subject, subjectID, userID uint) (Tally, error) {
	return s.cast(ctx, subject, subjectID, userID, models.Down)
}

func voteAction(dir models.Direction) string {
	if dir == models.Up {
		return ActionUpVote
	}
	return ActionDownVote
}

func (s *VoteService) cast(ctx context.Context, subject models.Subject, subjectID, userID uint, dir models.Direction) (Tally, error) {
	action := voteAction(dir)
	entity := subject.Entity()

	var tally Tally
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := lockSubject(ctx, tx, action, subject, subjectID); err != nil {
			return err
		}
		if _, err := findLiveUser(ctx, tx, action, entity, userID); err != nil {
			return err
		}

		existing, err := tx.Votes().Find(ctx, subject, subjectID, userID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			vote := &models.Vote{SubjectType: subject, SubjectID: subjectID, UserID: userID, Direction: dir}
			if err := tx.Votes().Create(ctx, vote); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return alreadyVoted(action, entity, dir)
				}
				return err
			}
			if err := tx.Subjects().Adjust(ctx, subject, subjectID, dir, 1); err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.Direction == dir:
			return alreadyVoted(action, entity, dir)
		default:
			// 直接翻转方向，不经过取消投票
			ok, err := tx.Votes().Flip(ctx, existing.ID, existing.Direction, dir)
			if err != nil {
				return err
			}
			if !ok {
				return newError(ErrConflict, action, entity, "%s vote changed concurrently, try again.", entity)
			}
			if err := tx.Subjects().Adjust(ctx, subject, subjectID, existing.Direction, -1); err != nil {
				return err
			}
			if err := tx.Subjects().Adjust(ctx, subject, subjectID, dir, 1); err != nil {
				return err
			}
		}

		tally, err = readTally(ctx, tx, subject, subjectID)
		return err
	})
	return tally, err
}

// Unvote 删除投票记录并回退对应计数
func (s *VoteService) Unvote(ctx context.Context, subject models.Subject, subjectID, userID uint) (Tally, error) {
	entity := subject.Entity()

	var tally Tally
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := lockSubject(ctx, tx, ActionUnvote, subject, subjectID); err != nil {
			return err
		}
		if _, err := findLiveUser(ctx, tx, ActionUnvote, entity, userID); err != nil {
			return err
		}

		existing, err := tx.Votes().Find(ctx, subject, subjectID, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return notYetVoted(entity)
		}
		if err != nil {
			return err
		}
		ok, err := tx.Votes().Delete(ctx, existing.ID, existing.Direction)
		if err != nil {
			return err
		}
		if !ok {
			return notYetVoted(entity)
		}
		if err := tx.Subjects().Adjust(ctx, subject, subjectID, existing.Direction, -1); err != nil {
			return err
		}

		tally, err = readTally(ctx, tx, subject, subjectID)
		return err
	})
	return tally, err
}

// Direction 返回用户当前的投票方向，未投票时 ok 为 false
func (s *VoteService) Direction(ctx context.Context, subject models.Subject, subjectID, userID uint) (dir models.Direction, ok bool, err error) {
	vote, err := s.store.Votes().Find(ctx, subject, subjectID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return vote.Direction, true, nil
}

func alreadyVoted(action, entity string, dir models.Direction) *Error {
	return newError(ErrAlreadyVoted, action, entity, "%s has already been %s voted.", entity, dir)
}

func notYetVoted(entity string) *Error {
	return newError(ErrNotYetVoted, ActionUnvote, entity, "%s must first be up or down voted.", entity)
}

// lockSubject 加载并锁定被操作对象，不存在或已删除时报错
func lockSubject(ctx context.Context, tx repository.Store, action string, subject models.Subject, id uint) (*repository.SubjectRow, error) {
	if !subject.Valid() {
		return nil, fmt.Errorf("services: unknown subject %q", subject)
	}
	entity := subject.Entity()
	row, err := tx.Subjects().Lock(ctx, subject, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, newError(ErrSubjectNotFound, action, entity, "%s does not exist with ID %d.", entity, id)
	}
	if err != nil {
		return nil, err
	}
	if row.Status.IsDeleted() {
		return nil, deletedError(action, entity)
	}
	return row, nil
}

func readTally(ctx context.Context, tx repository.Store, subject models.Subject, id uint) (Tally, error) {
	row, err := tx.Subjects().Lock(ctx, subject, id)
	if err != nil {
		return Tally{}, err
	}
	return Tally{Upvotes: row.Upvotes, Downvotes: row.Downvotes}, nil
}
