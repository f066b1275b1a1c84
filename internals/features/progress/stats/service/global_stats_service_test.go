package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	"ecoquest_backend/internals/features/progress/stats/dto"
	"ecoquest_backend/internals/features/progress/stats/model"
	statsService "ecoquest_backend/internals/features/progress/stats/service"
	userModel "ecoquest_backend/internals/features/users/user/model"
	"ecoquest_backend/internals/testutil"
)

func intPtr(v int) *int { return &v }

func TestGet_FallsBackToBaseline(t *testing.T) {
	db := testutil.OpenTestDB(t)

	s, err := statsService.Get(db)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultGlobalStats(), s)

	var n int64
	db.Model(&model.GlobalStatsModel{}).Count(&n)
	assert.Zero(t, n, "read must not create the row")
}

func TestUpdate_MergesProvidedFields(t *testing.T) {
	db := testutil.OpenTestDB(t)

	s, err := statsService.Update(db, dto.UpdateGlobalStatsRequest{TotalSaplings: intPtr(2000)})
	require.NoError(t, err)
	assert.Equal(t, 2000, s.TotalSaplings)
	assert.Equal(t, 3400, s.TotalWasteSaved, "untouched fields keep baseline")
	assert.False(t, s.LastUpdated.IsZero())

	s, err = statsService.Update(db, dto.UpdateGlobalStatsRequest{TotalTasks: intPtr(7), TotalStudents: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 2000, s.TotalSaplings)
	assert.Equal(t, 7, s.TotalTasks)
	assert.Equal(t, 0, s.TotalStudents)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		delta       statsService.Delta
		wantChanged bool
		want        [4]int // saplings, waste, students, tasks
	}{
		{"zero delta", statsService.Delta{}, false, [4]int{1, 4, 2, 0}},
		{"increment", statsService.Delta{Saplings: 1, WasteSaved: 5}, true, [4]int{2, 9, 2, 0}},
		{"decrement", statsService.Delta{Saplings: -1, Students: -1}, true, [4]int{0, 4, 1, 0}},
		{"clamped decrement", statsService.Delta{WasteSaved: -5, Tasks: -1}, false, [4]int{1, 4, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.OpenTestDB(t)
			testutil.SetStats(t, db, 1, 4, 2, 0)

			changed, err := statsService.Apply(db, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)

			s := testutil.GetStats(t, db)
			assert.Equal(t, tt.want, [4]int{s.TotalSaplings, s.TotalWasteSaved, s.TotalStudents, s.TotalTasks})
		})
	}
}

func TestApply_CreatesRowFromBaseline(t *testing.T) {
	db := testutil.OpenTestDB(t)

	changed, err := statsService.Apply(db, statsService.Delta{Students: 1})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 851, testutil.GetStats(t, db).TotalStudents)
}

func TestCategoryDelta(t *testing.T) {
	assert.Equal(t, statsService.Delta{Saplings: 1}, statsService.CategoryDelta("planting", 1))
	assert.Equal(t, statsService.Delta{WasteSaved: -5}, statsService.CategoryDelta("waste", -1))
	assert.True(t, statsService.CategoryDelta("energy", 1).IsZero())
	assert.True(t, statsService.CategoryDelta("water", -1).IsZero())
}

func TestOverview(t *testing.T) {
	db := testutil.OpenTestDB(t)
	s1 := testutil.CreateUser(t, db, userModel.UserRoleStudent, 30)
	s2 := testutil.CreateUser(t, db, userModel.UserRoleStudent, 20)
	testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	plant := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 30)
	waste := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 20)
	testutil.CreateSubmission(t, db, s1, plant, submissionModel.SubmissionStatusApproved, "a")
	testutil.CreateSubmission(t, db, s2, waste, submissionModel.SubmissionStatusApproved, "b")
	testutil.CreateSubmission(t, db, s2, plant, submissionModel.SubmissionStatusPending, "c")

	out, err := statsService.Overview(context.Background(), db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Students)
	assert.EqualValues(t, 1, out.Teachers)
	assert.EqualValues(t, 2, out.Tasks)
	assert.EqualValues(t, 1, out.ApprovedPlanting)
	assert.EqualValues(t, 1, out.ApprovedWaste)
	assert.EqualValues(t, 50, out.TotalEcoPoints)
	assert.EqualValues(t, 2, out.SubmissionsByStatus["approved"])
	assert.EqualValues(t, 1, out.SubmissionsByStatus["pending"])
	assert.EqualValues(t, 0, out.SubmissionsByStatus["rejected"])
}
