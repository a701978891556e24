package models

// Subject 可被投票、收藏的对象类型
type Subject string

const (
	SubjectPost    Subject = "post"
	SubjectComment Subject = "comment"
)

// Entity is the display name used in messages ("Post", "Comment").
func (s Subject) Entity() string {
	switch s {
	case SubjectPost:
		return "Post"
	case SubjectComment:
		return "Comment"
	}
	return string(s)
}

// Table is the table that carries the subject's counters.
func (s Subject) Table() string {
	switch s {
	case SubjectPost:
		return "posts"
	case SubjectComment:
		return "comments"
	}
	return ""
}

func (s Subject) Valid() bool {
	return s == SubjectPost || s == SubjectComment
}
