package helper_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "ecoquest_backend/internals/helpers/auth"
	"ecoquest_backend/internals/testutil"
)

func TestBlacklist(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	ok, err := helperAuth.IsBlacklisted(ctx, db, "tok-a", "s3cret")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, helperAuth.AddToBlacklist(ctx, db, "tok-a", "s3cret", time.Now().Add(time.Hour)))
	ok, err = helperAuth.IsBlacklisted(ctx, db, "tok-a", "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	// secret lain → hash lain
	ok, _ = helperAuth.IsBlacklisted(ctx, db, "tok-a", "other")
	assert.False(t, ok)

	// entri kadaluarsa tidak dihitung; upsert menimpa expiry
	require.NoError(t, helperAuth.AddToBlacklist(ctx, db, "tok-a", "s3cret", time.Now().Add(-time.Minute)))
	ok, _ = helperAuth.IsBlacklisted(ctx, db, "tok-a", "s3cret")
	assert.False(t, ok)
}
