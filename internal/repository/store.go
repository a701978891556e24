package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 聚合所有仓储，并提供事务边界
type Store interface {
	Users() UserRepository
	Categories() CategoryRepository
	Posts() PostRepository
	Comments() CommentRepository
	Subjects() SubjectRepository
	Votes() VoteRepository
	Bookmarks() BookmarkRepository

	// Transaction runs fn with a Store bound to a single database transaction.
	// Returning an error from fn rolls the transaction back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Users() UserRepository          { return NewUserRepository(s.db) }
func (s *gormStore) Categories() CategoryRepository { return NewCategoryRepository(s.db) }
func (s *gormStore) Posts() PostRepository          { return NewPostRepository(s.db) }
func (s *gormStore) Comments() CommentRepository    { return NewCommentRepository(s.db) }
func (s *gormStore) Subjects() SubjectRepository    { return NewSubjectRepository(s.db) }
func (s *gormStore) Votes() VoteRepository          { return NewVoteRepository(s.db) }
func (s *gormStore) Bookmarks() BookmarkRepository  { return NewBookmarkRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
