package services

// Actor 当前登录用户，由中间件从 session 解析后逐层显式传入
// nil 表示未登录
type Actor struct {
	UserID   uint
	Username string
}

// RequireActor fails with the "You must be logged in." error when actor is nil.
func RequireActor(actor *Actor, action, entity string) error {
	if actor == nil {
		return Unauthenticated(action, entity)
	}
	return nil
}

func (a *Actor) Is(userID uint) bool {
	return a != nil && a.UserID == userID
}
