package auth

import "time"

// Claims carries the identity encoded in a session token.
type Claims struct {
	UserID int64
	Admin  bool
}

type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
