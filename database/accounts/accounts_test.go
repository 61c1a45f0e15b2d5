package accounts

import (
	"path/filepath"
	"testing"

	"github.com/zt6453928/lunatv-enhanced/cmd/flags"
	"github.com/zt6453928/lunatv-enhanced/database/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The config document synthesizes missing user entries from the stored
// profile, so role and tag updates must land in the users table too.
func TestProfileMirrorsRoleAndTags(t *testing.T) {
	flags.DatabaseFile = filepath.Join(t.TempDir(), "test.db")

	_, err := CreateAccount("alice", "pw")
	require.NoError(t, err)

	require.NoError(t, SetUserTags("alice", []string{"vip", "beta"}))
	require.NoError(t, SetUserRole("alice", "admin"))

	profile, err := store.New().LoadUserProfile("alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "admin", profile.Role)
	assert.Equal(t, []string{"vip", "beta"}, profile.Tags)

	// Dropping a tag group rewrites the remaining list.
	require.NoError(t, SetUserTags("alice", []string{"beta"}))
	profile, err = store.New().LoadUserProfile("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, profile.Tags)

	assert.ErrorIs(t, SetUserRole("nobody", "admin"), gorm.ErrRecordNotFound)
}
