package auth

const (
	UserCtxKey = "archive-user"
)

const (
	minPasswordLength = 6
)
