package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	statsModel "ecoquest_backend/internals/features/progress/stats/model"
	userModel "ecoquest_backend/internals/features/users/user/model"
	wipeService "ecoquest_backend/internals/features/utils/maintenance/service"
	helperOSS "ecoquest_backend/internals/helpers/oss"
	"ecoquest_backend/internals/testutil"
)

func TestWipeAll(t *testing.T) {
	db := testutil.OpenTestDB(t)
	urls := []string{"https://cdn.test/a.webp", "https://cdn.test/b.webp"}

	s := testutil.CreateUser(t, db, userModel.UserRoleStudent, 10)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 20)
	testutil.CreateSubmission(t, db, s, task, submissionModel.SubmissionStatusPending, urls[0])
	testutil.CreateSubmission(t, db, s, task, submissionModel.SubmissionStatusRejected, urls[1])
	testutil.SetStats(t, db, 1, 2, 3, 4)

	var got []string
	blob := &helperOSS.MockBlobService{
		DeleteManyByPublicURLFn: func(ctx context.Context, publicURLs []string) (int, error) {
			got = publicURLs
			return len(publicURLs), nil
		},
	}

	res, err := wipeService.WipeAll(context.Background(), db, blob)
	require.NoError(t, err)
	assert.ElementsMatch(t, urls, got)
	assert.Equal(t, 2, res.ObjectsDeleted)
	assert.EqualValues(t, 2, res.Deleted["submissions"])
	assert.EqualValues(t, 1, res.Deleted["users"])

	for _, m := range []interface{}{&userModel.UserModel{}, &taskModel.TaskModel{}, &submissionModel.SubmissionModel{}, &statsModel.GlobalStatsModel{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}
}

func TestWipeAll_BlobFailureIsNotFatal(t *testing.T) {
	db := testutil.OpenTestDB(t)
	s := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)
	testutil.CreateSubmission(t, db, s, task, submissionModel.SubmissionStatusPending, "https://cdn.test/x.webp")

	blob := &helperOSS.MockBlobService{
		DeleteManyByPublicURLFn: func(ctx context.Context, publicURLs []string) (int, error) {
			return 0, errors.New("oss down")
		},
	}
	res, err := wipeService.WipeAll(context.Background(), db, blob)
	require.NoError(t, err)
	assert.Zero(t, res.ObjectsDeleted)

	var n int64
	db.Model(&userModel.UserModel{}).Count(&n)
	assert.Zero(t, n)
}

func TestWipeAll_NoBlob(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)

	res, err := wipeService.WipeAll(context.Background(), db, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Deleted["users"])
}
