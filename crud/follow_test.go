package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSocial/domain"
	"wtfSocial/errs"
)

func TestFollowCreate(t *testing.T) {
	s := testServices(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	follow := &domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}
	require.NoError(t, s.Follow.Create(follow))
	assert.Greater(t, follow.ID, 0)

	found, err := s.Follow.ByIDs(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, follow.ID, found.ID)
}

func TestFollowCreateDuplicate(t *testing.T) {
	s := testServices(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))

	err := s.Follow.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	// Still exactly one edge.
	var count int64
	require.NoError(t, s.db.Model(&domain.Follow{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowCreateSelf(t *testing.T) {
	s := testServices(t)
	alice := createTestUser(t, s, "alice")

	err := s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: alice.ID})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
}

func TestFollowCreateFollowedMissing(t *testing.T) {
	s := testServices(t)
	alice := createTestUser(t, s, "alice")

	err := s.Follow.Create(&domain.Follow{FollowerID: alice.ID, FollowedID: 9999})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestFollowDelete(t *testing.T) {
	s := testServices(t)
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	require.NoError(t, s.Follow.Create(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))
	require.NoError(t, s.Follow.Delete(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID}))

	_, err := s.Follow.ByIDs(bob.ID, alice.ID)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	// Deleting an edge that does not exist is an error, not a crash.
	err = s.Follow.Delete(&domain.Follow{FollowerID: bob.ID, FollowedID: alice.ID})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}
