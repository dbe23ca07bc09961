package domain

import "time"

// Like represents a many-to-many relationship between a User and a Post.
// Likes are set membership, not a counter: creating an existing membership
// and deleting a missing one are both no-ops.
type Like struct {
	ID     int  `json:"id"`
	UserID int  `json:"user_id" gorm:"notNull;index;uniqueIndex:idx_user_post"`
	PostID int  `json:"post_id" gorm:"notNull;index;uniqueIndex:idx_user_post"`
	Post   Post `json:"post"`

	CreatedAt time.Time `json:"created_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	Create(like *Like) error
	Delete(like *Like) error
	ByUserID(userID int) ([]Like, error)
}
