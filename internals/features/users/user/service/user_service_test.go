package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	"ecoquest_backend/internals/features/users/user/dto"
	"ecoquest_backend/internals/features/users/user/model"
	userService "ecoquest_backend/internals/features/users/user/service"
	helper "ecoquest_backend/internals/helpers"
	"ecoquest_backend/internals/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUser_StudentCounter(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	testutil.SetStats(t, db, 10, 20, 30, 40)

	s := &model.UserModel{UserEmail: "Siti@Example.com ", UserName: "Siti", UserRole: model.UserRoleStudent}
	require.NoError(t, userService.CreateUser(ctx, db, s))
	assert.Equal(t, "siti@example.com", s.UserEmail)
	assert.Equal(t, 31, testutil.GetStats(t, db).TotalStudents)

	teacher := &model.UserModel{UserEmail: "guru@example.com", UserName: "Guru", UserRole: model.UserRoleTeacher}
	require.NoError(t, userService.CreateUser(ctx, db, teacher))
	assert.Equal(t, 31, testutil.GetStats(t, db).TotalStudents, "teacher does not count")

	dup := &model.UserModel{UserEmail: "siti@example.com", UserName: "Other"}
	err := userService.CreateUser(ctx, db, dup)
	assert.True(t, errors.Is(err, helper.ErrConflict))
	assert.Equal(t, 31, testutil.GetStats(t, db).TotalStudents)
}

func TestUpsertUser_CreateThenReplace(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	testutil.SetStats(t, db, 0, 0, 5, 0)

	id := uuid.New()
	created, isNew, err := userService.UpsertUser(ctx, db, dto.UpsertUserRequest{
		UserID:    id.String(),
		Email:     "budi@example.com",
		Name:      "Budi",
		School:    ptr("SMA 1"),
		EcoPoints: ptr(40),
		Badges:    []string{"First Step", "First Step", " "},
	})
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, id, created.UserID)
	assert.Equal(t, model.UserRoleStudent, created.UserRole)
	assert.Equal(t, 6, testutil.GetStats(t, db).TotalStudents)

	got := testutil.ReloadUser(t, db, id)
	assert.Equal(t, 40, got.UserEcoPoints)
	assert.Equal(t, []string{"First Step"}, []string(got.UserBadges))

	// role student -> teacher: total_students turun
	replaced, isNew, err := userService.UpsertUser(ctx, db, dto.UpsertUserRequest{
		UserID:   id.String(),
		Email:    "budi@example.com",
		Name:     "Pak Budi",
		Role:     "teacher",
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, "Pak Budi", replaced.UserName)
	assert.Equal(t, 5, testutil.GetStats(t, db).TotalStudents)

	got = testutil.ReloadUser(t, db, id)
	assert.Equal(t, model.UserRoleTeacher, got.UserRole)
	assert.False(t, got.UserIsActive)
	assert.Nil(t, got.UserSchool)
	assert.Equal(t, 40, got.UserEcoPoints, "omitted reward fields are kept")
}

func TestUpsertUser_Errors(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	other := testutil.CreateUser(t, db, model.UserRoleStudent, 0)
	u := testutil.CreateUser(t, db, model.UserRoleStudent, 0)

	_, _, err := userService.UpsertUser(ctx, db, dto.UpsertUserRequest{Email: "x@example.com", Name: "X", Role: "janitor"})
	assert.True(t, errors.Is(err, helper.ErrValidation))

	_, _, err = userService.UpsertUser(ctx, db, dto.UpsertUserRequest{UserID: "nope", Email: "x@example.com", Name: "X"})
	assert.True(t, errors.Is(err, helper.ErrValidation))

	_, _, err = userService.UpsertUser(ctx, db, dto.UpsertUserRequest{UserID: u.UserID.String(), Email: other.UserEmail, Name: "X"})
	assert.True(t, errors.Is(err, helper.ErrConflict))
}

func TestDeleteUser_RemovesOwnedRows(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	s := &model.UserModel{UserEmail: "del@example.com", UserName: "Del"}
	require.NoError(t, userService.CreateUser(ctx, db, s))
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)
	testutil.CreateSubmission(t, db, *s, task, submissionModel.SubmissionStatusApproved, "https://cdn.test/a.webp")
	before := testutil.GetStats(t, db)

	require.NoError(t, userService.DeleteUser(ctx, db, s.UserID))

	after := testutil.GetStats(t, db)
	assert.Equal(t, before.TotalStudents-1, after.TotalStudents)
	assert.Equal(t, before.TotalSaplings, after.TotalSaplings, "approved impact is not reversed")

	var n int64
	db.Model(&submissionModel.SubmissionModel{}).Count(&n)
	assert.Zero(t, n)

	err := userService.DeleteUser(ctx, db, s.UserID)
	assert.True(t, errors.Is(err, helper.ErrNotFound))
}

func TestLeaderboard(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	a := testutil.CreateUser(t, db, model.UserRoleStudent, 300)
	b := testutil.CreateUser(t, db, model.UserRoleStudent, 120, "Eco Warrior")
	testutil.CreateUser(t, db, model.UserRoleTeacher, 999)
	inactive := testutil.CreateUser(t, db, model.UserRoleStudent, 500)
	require.NoError(t, db.Model(&inactive).Update("user_is_active", false).Error)

	rows, err := userService.Leaderboard(ctx, db, "", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, a.UserID, rows[0].UserID)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, b.UserID, rows[1].UserID)
	assert.Equal(t, []string{"Eco Warrior"}, rows[1].UserBadges)
	assert.Equal(t, []string{}, rows[0].UserBadges)
}

func TestCreateUser_UniqueIndexMapsToConflict(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	testutil.SetStats(t, db, 0, 0, 3, 0)

	gid := "google-sub-123"
	require.NoError(t, userService.CreateUser(ctx, db, &model.UserModel{UserEmail: "a@example.com", UserName: "A", UserGoogleID: &gid}))

	// email beda lolos pengecekan awal, insert ditolak unique index google id
	err := userService.CreateUser(ctx, db, &model.UserModel{UserEmail: "b@example.com", UserName: "B", UserGoogleID: &gid})
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrConflict))
	assert.Equal(t, 409, helper.StatusFromError(err))
	assert.Equal(t, 4, testutil.GetStats(t, db).TotalStudents, "failed insert rolls back the counter")
}
