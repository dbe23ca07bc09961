package auth

import (
	"context"

	"wtfSocial/domain"
)

const (
	userKey privateKey = "user"
)

type privateKey string

// SetUser stores the signed-in user in the request context.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the signed-in user from the request context, or nil if the
// request is anonymous.
func GetUser(ctx context.Context) *domain.User {
	if temp := ctx.Value(userKey); temp != nil {
		if user, ok := temp.(*domain.User); ok {
			return user
		}
	}
	return nil
}
