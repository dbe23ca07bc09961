package crud

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wtfSocial/domain"
)

// testDB opens a fresh in-memory sqlite database with all tables migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Post{},
		domain.Follow{},
		domain.Like{},
		domain.Comment{},
	))
	return db
}

// testServices builds the full service container on a fresh test database.
func testServices(t *testing.T) *Services {
	t.Helper()
	services, err := NewServices(
		testDB(t),
		WithUser("test-hmac-key", "test-pepper"),
		WithPost(),
		WithFollow(),
		WithLike(),
	)
	require.NoError(t, err)
	return services
}

// createTestUser registers a user through the user service.
func createTestUser(t *testing.T, s *Services, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "password123",
	}
	require.NoError(t, s.User.Create(user))
	return user
}

// createTestPost publishes a post through the post service.
func createTestPost(t *testing.T, s *Services, userID int, body string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		UserID: userID,
		Body:   body,
	}
	require.NoError(t, s.Post.Create(post))
	return post
}
