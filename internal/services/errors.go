package services

import (
	"errors"
	"fmt"
)

// 错误分类，配合 errors.Is 使用
var (
	ErrAlreadyVoted      = errors.New("already voted")
	ErrNotYetVoted       = errors.New("not yet voted")
	ErrAlreadyBookmarked = errors.New("already bookmarked")
	ErrNotBookmarked     = errors.New("not bookmarked")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrMissingContent    = errors.New("missing content")
	ErrMissingTitle      = errors.New("missing title")
	ErrInvalid           = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrUnauthenticated   = errors.New("not logged in")
	ErrForbidden         = errors.New("forbidden")
	ErrDeleted           = errors.New("deleted")
)

// 动作名，出现在 "Cannot <action> <Entity>: ..." 里
const (
	ActionCreate     = "create"
	ActionFind       = "find"
	ActionEdit       = "edit"
	ActionDelete     = "delete"
	ActionUpVote     = "up vote"
	ActionDownVote   = "down vote"
	ActionUnvote     = "unvote"
	ActionBookmark   = "bookmark"
	ActionUnbookmark = "unbookmark"
	ActionLogIn      = "log in"
)

// Error is an application error a user can act on. Its message is
// "Cannot <Action> <Entity>: <Reason>" and it matches its Code under
// errors.Is.
type Error struct {
	Action string
	Entity string
	Reason string
	Code   error
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("Cannot %s: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("Cannot %s %s: %s", e.Action, e.Entity, e.Reason)
}

func (e *Error) Unwrap() error { return e.Code }

func newError(code error, action, entity, reason string, args ...interface{}) *Error {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &Error{Action: action, Entity: entity, Reason: reason, Code: code}
}

// IsApplication reports whether err is an *Error.
func IsApplication(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Unauthenticated is returned to callers that are not logged in.
func Unauthenticated(action, entity string) *Error {
	return newError(ErrUnauthenticated, action, entity, "You must be logged in.")
}

func invalid(action, entity, reason string, args ...interface{}) *Error {
	return newError(ErrInvalid, action, entity, reason, args...)
}

func missingContent(action, entity string) *Error {
	return newError(ErrMissingContent, action, entity, "Missing content.")
}

func missingTitle(action, entity string) *Error {
	return newError(ErrMissingTitle, action, entity, "Missing title.")
}

func userMissing(action, entity string, id uint) *Error {
	return newError(ErrUserNotFound, action, entity, "User does not exist with ID %d.", id)
}

func deletedError(action, entity string) *Error {
	return newError(ErrDeleted, action, entity, "%s has been deleted.", entity)
}
