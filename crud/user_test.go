package crud

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func TestUserCreate(t *testing.T) {
	s := testServices(t)

	user := createTestUser(t, s, "alice")
	assert.Greater(t, user.ID, 0)

	// The plaintext credential must never survive the validation chain.
	assert.Empty(t, user.Password)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.RememberHash)

	found, err := s.User.ByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestUserCreateUsernameTaken(t *testing.T) {
	s := testServices(t)
	createTestUser(t, s, "alice")

	err := s.User.Create(&domain.User{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, errs.ECONFLICT, errs.ErrorCode(err))
	assert.Equal(t, "Username already taken.", errs.ErrorMessage(err))

	// No duplicate row was created.
	var count int64
	require.NoError(t, s.db.Model(&domain.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserCreateValidations(t *testing.T) {
	s := testServices(t)

	err := s.User.Create(&domain.User{Email: "a@example.com", Password: "password123"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.User.Create(&domain.User{Username: "bob", Password: ""})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.User.Create(&domain.User{Username: "bob", Password: "short"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	err = s.User.Create(&domain.User{Username: "bob", Email: "not-an-email", Password: "password123"})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestUserAuthenticate(t *testing.T) {
	s := testServices(t)
	user := createTestUser(t, s, "alice")

	found, err := s.User.Authenticate("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.User.Authenticate("alice", "wrong-password")
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	_, err = s.User.Authenticate("nobody", "password123")
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestUserByRemember(t *testing.T) {
	s := testServices(t)

	user := &domain.User{
		Username: "alice",
		Password: "password123",
	}
	require.NoError(t, s.User.Create(user))
	require.NotEmpty(t, user.Remember)

	found, err := s.User.ByRemember(user.Remember)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.User.ByRemember("bogus-token")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestUserByRememberConcurrent(t *testing.T) {
	s := testServices(t)

	// Pin the pool to one connection so every goroutine sees the same
	// in-memory database; token hashing still runs concurrently.
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	users := make([]*domain.User, 4)
	for i := range users {
		users[i] = createTestUser(t, s, fmt.Sprintf("user%d", i))
		require.NotEmpty(t, users[i].Remember)
	}

	// Every lookup must resolve to its own user; a corrupted token hash
	// would surface as a not-found error or a mismatched ID.
	var wg sync.WaitGroup
	errc := make(chan error, len(users)*8)
	for _, user := range users {
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(user *domain.User) {
				defer wg.Done()
				found, err := s.User.ByRemember(user.Remember)
				if err != nil {
					errc <- err
					return
				}
				if found.ID != user.ID {
					errc <- fmt.Errorf("remember lookup returned user %d, want %d", found.ID, user.ID)
				}
			}(user)
		}
	}
	wg.Wait()
	close(errc)
	for err := range errc {
		assert.NoError(t, err)
	}
}

func TestUserFollowCounts(t *testing.T) {
	s := testServices(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))
	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: carol.ID, FollowedID: alice.ID}))
	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: bob.ID}))

	followers, err := s.User.CountFollowers(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, followers)

	followeds, err := s.User.CountFolloweds(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, followeds)
}

func TestUserByIDNotFound(t *testing.T) {
	s := testServices(t)
	_, err := s.User.ByID(42)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
