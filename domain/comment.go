package domain

import "time"

// Comment is part of the data model and gets migrated, but no handler uses
// it yet.
type Comment struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id" gorm:"notNull;index"`
	User   User   `json:"user"`
	PostID int    `json:"post_id" gorm:"notNull;index"`
	Body   string `json:"body" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}
