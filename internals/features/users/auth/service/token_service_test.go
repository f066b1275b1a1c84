package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "ecoquest_backend/internals/features/users/user/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	u := userModel.UserModel{UserID: uuid.New(), UserEmail: "a@b.id", UserName: "A", UserRole: userModel.UserRoleTeacher}
	now := time.Now()

	tok, exp, err := IssueAccessToken(u, "k1", time.Hour, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	claims, err := ParseAccessToken(tok, "k1")
	require.NoError(t, err)
	assert.Equal(t, u.UserID.String(), claims.ID)
	assert.Equal(t, "teacher", claims.Role)
	assert.Equal(t, "a@b.id", claims.Email)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)

	_, err = ParseAccessToken(tok, "wrong")
	assert.Error(t, err)
}

func TestAccessToken_ExpiredAndMissingSecret(t *testing.T) {
	u := userModel.UserModel{UserID: uuid.New(), UserRole: userModel.UserRoleStudent}

	tok, _, err := IssueAccessToken(u, "k1", time.Minute, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = ParseAccessToken(tok, "k1")
	assert.Error(t, err)

	_, _, err = IssueAccessToken(u, " ", time.Hour, time.Now())
	assert.Error(t, err)
}
