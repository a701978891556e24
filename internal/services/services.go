package services

import "agora/internal/repository"

// Services 汇总所有业务服务，共用同一个 Store
type Services struct {
	Users      *UserService
	Categories *CategoryService
	Posts      *PostService
	Comments   *CommentService
	Votes      *VoteService
	Bookmarks  *BookmarkService
}

func New(store repository.Store) *Services {
	return &Services{
		Users:      NewUserService(store),
		Categories: NewCategoryService(store),
		Posts:      NewPostService(store),
		Comments:   NewCommentService(store),
		Votes:      NewVoteService(store),
		Bookmarks:  NewBookmarkService(store),
	}
}
