package domain

import "time"

// Post is a short text update published by a user. Posts are never deleted.
// An edit overwrites the body and bumps UpdatedAt, which also moves the post
// back to the top of the feeds since feeds order on UpdatedAt.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id" gorm:"notNull;index"`
	User   User   `json:"user"`
	Body   string `json:"body" gorm:"type:text"`

	Likes []Like `json:"likes" gorm:"foreignKey:PostID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostService is a set of methods to manipulate and work with the Post model.
type PostService interface {
	ByID(id int) (*Post, error)
	Create(post *Post) error
	Update(post *Post) error
	All(page int) (*Feed, error)
	ByUserID(userID, page int) (*Feed, error)
	ByFollowerID(followerID, page int) (*Feed, error)
}
