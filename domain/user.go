package domain

import "time"

// User represents a registered account. The Password and Remember fields only
// carry incoming plaintext values through the validation chain and are never
// stored, only their hashes are.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" gorm:"uniqueIndex;notNull"`
	Email    string `json:"email"`

	Password     string `json:"-" gorm:"-"`
	PasswordHash string `json:"-"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-"`

	Posts     []Post   `json:"posts" gorm:"foreignKey:UserID"`
	Likes     []Like   `json:"likes" gorm:"foreignKey:UserID"`
	Followers []Follow `json:"followers" gorm:"foreignKey:FollowedID"`
	Followeds []Follow `json:"followeds" gorm:"foreignKey:FollowerID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
type UserService interface {
	Authenticate(username, password string) (*User, error)
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	ByRemember(token string) (*User, error)
	Create(user *User) error
	Update(user *User) error
	MakeRememberToken() (string, error)
	CountFollowers(userID int) (int, error)
	CountFolloweds(userID int) (int, error)
}
