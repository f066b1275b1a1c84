package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	imageModel "ecoquest_backend/internals/features/eco/image_uploads/model"
	"ecoquest_backend/internals/features/eco/submissions/model"
	"ecoquest_backend/internals/features/eco/submissions/service"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	pointModel "ecoquest_backend/internals/features/progress/points/model"
	pointService "ecoquest_backend/internals/features/progress/points/service"
	userModel "ecoquest_backend/internals/features/users/user/model"
	helper "ecoquest_backend/internals/helpers"
	helperOSS "ecoquest_backend/internals/helpers/oss"
	"ecoquest_backend/internals/testutil"
)

const storedURL = "https://oss-ap-southeast-5.aliyuncs.com/ecoquest/task-images/1700000000000-pohon.webp"

func TestSubmissionLifecycle_PlantingScenario(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.SetStats(t, db, 1250, 3400, 850, 45)
	ctx := context.Background()

	s1 := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	teacher := testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	t1 := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)

	var deletedURL string
	blob := &helperOSS.MockBlobService{
		IsStoredImageURLFn: func(u string) bool { return u == storedURL },
		DeleteByPublicURLFn: func(_ context.Context, u string) error {
			deletedURL = u
			return nil
		},
	}
	svc := service.NewSubmissionService(db, blob)

	sub, err := svc.Create(ctx, service.CreateInput{
		TaskID:    t1.TaskID,
		StudentID: s1.UserID,
		Evidence:  storedURL,
		Location:  "Halaman sekolah",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionStatusPending, sub.SubmissionStatus)
	assert.GreaterOrEqual(t, sub.SubmissionMLConfidence, 70)
	assert.LessOrEqual(t, sub.SubmissionMLConfidence, 99)
	assert.Equal(t, 0, testutil.ReloadUser(t, db, s1.UserID).UserEcoPoints, "create must not reward")

	review, err := svc.Review(ctx, sub.SubmissionID, teacher.UserID, model.SubmissionStatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, 50, review.PointsAwarded)
	assert.True(t, review.GlobalStatsUpdated)
	assert.Contains(t, review.BadgesGranted, pointService.BadgeFirstStep)

	student := testutil.ReloadUser(t, db, s1.UserID)
	assert.Equal(t, 50, student.UserEcoPoints)
	assert.Equal(t, 1, student.UserStreak)
	assert.Equal(t, 1251, testutil.GetStats(t, db).TotalSaplings)

	out, err := svc.DeleteWithReversal(ctx, sub.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, 50, out.PointsDeducted)
	assert.True(t, out.StudentUpdated)
	assert.True(t, out.GlobalStatsUpdated)
	assert.True(t, out.EvidenceDeleted)
	assert.Equal(t, storedURL, deletedURL)

	student = testutil.ReloadUser(t, db, s1.UserID)
	assert.Equal(t, 0, student.UserEcoPoints)
	assert.Equal(t, 0, student.UserStreak)
	assert.False(t, student.HasBadge(pointService.BadgeFirstStep))
	assert.Equal(t, 1250, testutil.GetStats(t, db).TotalSaplings)

	_, err = svc.GetByID(ctx, sub.SubmissionID)
	assert.True(t, errors.Is(err, helper.ErrNotFound))

	// ledger: +50 lalu -50
	var logs []pointModel.UserPointLog
	require.NoError(t, db.Order("user_point_log_id").Find(&logs, "user_point_log_user_id = ?", s1.UserID).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, 50, logs[0].UserPointLogPoints)
	assert.Equal(t, -50, logs[1].UserPointLogPoints)
	assert.Equal(t, 0, logs[1].UserPointLogBalance)
}

func TestReversal_EcoWarriorAddedThenRemoved(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()

	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 80, pointService.BadgeFirstStep)
	teacher := testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 50)
	sub := testutil.CreateSubmission(t, db, student, task, model.SubmissionStatusPending, "https://example.com/a.jpg")

	svc := service.NewSubmissionService(db, nil)

	review, err := svc.Review(ctx, sub.SubmissionID, teacher.UserID, model.SubmissionStatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{pointService.BadgeEcoWarrior}, review.BadgesGranted)

	u := testutil.ReloadUser(t, db, student.UserID)
	assert.Equal(t, 130, u.UserEcoPoints)
	assert.True(t, u.HasBadge(pointService.BadgeEcoWarrior))
	assert.Equal(t, 3405, testutil.GetStats(t, db).TotalWasteSaved, "row created from baseline, then +5")

	out, err := svc.DeleteWithReversal(ctx, sub.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, []string{pointService.BadgeEcoWarrior}, out.BadgesRevoked)
	assert.False(t, out.EvidenceDeleted, "foreign URL is not ours to delete")

	u = testutil.ReloadUser(t, db, student.UserID)
	assert.Equal(t, 80, u.UserEcoPoints)
	assert.False(t, u.HasBadge(pointService.BadgeEcoWarrior))
	assert.True(t, u.HasBadge(pointService.BadgeFirstStep))
	assert.Equal(t, 3400, testutil.GetStats(t, db).TotalWasteSaved)
}

func TestDeleteWithReversal_RejectsNonApproved(t *testing.T) {
	tests := []struct {
		name   string
		status model.SubmissionStatus
	}{
		{name: "pending", status: model.SubmissionStatusPending},
		{name: "rejected", status: model.SubmissionStatusRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.OpenTestDB(t)
			testutil.SetStats(t, db, 10, 10, 10, 10)
			student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 40, pointService.BadgeFirstStep)
			task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)
			sub := testutil.CreateSubmission(t, db, student, task, tt.status, storedURL)

			called := false
			blob := &helperOSS.MockBlobService{
				IsStoredImageURLFn:  func(string) bool { return true },
				DeleteByPublicURLFn: func(context.Context, string) error { called = true; return nil },
			}
			svc := service.NewSubmissionService(db, blob)

			_, err := svc.DeleteWithReversal(context.Background(), sub.SubmissionID)
			require.Error(t, err)
			assert.True(t, errors.Is(err, helper.ErrInvalidState))
			assert.Equal(t, 400, helper.StatusFromError(err))
			assert.False(t, called)

			u := testutil.ReloadUser(t, db, student.UserID)
			assert.Equal(t, 40, u.UserEcoPoints)
			assert.Equal(t, 10, testutil.GetStats(t, db).TotalSaplings)

			_, err = svc.GetByID(context.Background(), sub.SubmissionID)
			assert.NoError(t, err, "submission must survive")
		})
	}
}

func TestDeleteWithReversal_NotFound(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.SetStats(t, db, 1, 2, 3, 4)
	svc := service.NewSubmissionService(db, nil)

	_, err := svc.DeleteWithReversal(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrNotFound))
	assert.Equal(t, 404, helper.StatusFromError(err))

	s := testutil.GetStats(t, db)
	assert.Equal(t, 1, s.TotalSaplings)
	assert.Equal(t, 2, s.TotalWasteSaved)
}

func TestDeleteWithReversal_ClampsAtZero(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.SetStats(t, db, 0, 3, 0, 0)

	// poin sudah berkurang di luar jalur submission (mis. diedit admin)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 20)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 50)
	sub := testutil.CreateSubmission(t, db, student, task, model.SubmissionStatusApproved, "https://example.com/x.jpg")

	svc := service.NewSubmissionService(db, nil)
	out, err := svc.DeleteWithReversal(context.Background(), sub.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, 50, out.PointsDeducted)
	assert.False(t, out.GlobalStatsUpdated, "waste counter below 5 is left alone")

	u := testutil.ReloadUser(t, db, student.UserID)
	assert.Equal(t, 0, u.UserEcoPoints)
	assert.Equal(t, 0, u.UserStreak)
	assert.Equal(t, 3, testutil.GetStats(t, db).TotalWasteSaved)
}

func TestDeleteWithReversal_BlobFailureIsNotFatal(t *testing.T) {
	db := testutil.OpenTestDB(t)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 60)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryEnergy, 60)
	sub := testutil.CreateSubmission(t, db, student, task, model.SubmissionStatusApproved, storedURL)
	require.NoError(t, db.Create(&imageModel.ImageUploadModel{
		ImageUploadURL:          storedURL,
		ImageUploadObjectKey:    "task-images/1700000000000-pohon.webp",
		ImageUploadFilename:     "pohon.jpg",
		ImageUploadContentType:  "image/webp",
		ImageUploadUploadedBy:   student.UserID,
		ImageUploadSubmissionID: &sub.SubmissionID,
	}).Error)

	blob := &helperOSS.MockBlobService{
		IsStoredImageURLFn:  func(string) bool { return true },
		DeleteByPublicURLFn: func(context.Context, string) error { return helper.ErrUpstream },
	}
	svc := service.NewSubmissionService(db, blob)

	out, err := svc.DeleteWithReversal(context.Background(), sub.SubmissionID)
	require.NoError(t, err)
	assert.False(t, out.EvidenceDeleted)
	assert.Equal(t, 0, testutil.ReloadUser(t, db, student.UserID).UserEcoPoints)

	var n int64
	db.Model(&imageModel.ImageUploadModel{}).Count(&n)
	assert.Zero(t, n, "metadata removed even when object delete fails")
}

func TestReview_TerminalAndReject(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.SetStats(t, db, 5, 5, 5, 5)
	ctx := context.Background()

	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	teacher := testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 25)
	sub := testutil.CreateSubmission(t, db, student, task, model.SubmissionStatusPending, "https://example.com/r.jpg")
	svc := service.NewSubmissionService(db, nil)

	comment := "foto buram"
	out, err := svc.Review(ctx, sub.SubmissionID, teacher.UserID, model.SubmissionStatusRejected, &comment)
	require.NoError(t, err)
	assert.Equal(t, "rejected", out.Submission.SubmissionStatus)
	assert.Equal(t, 0, out.PointsAwarded)
	assert.Empty(t, out.BadgesGranted)
	require.NotNil(t, out.Submission.SubmissionReviewedBy)
	assert.Equal(t, teacher.UserID, *out.Submission.SubmissionReviewedBy)

	assert.Equal(t, 0, testutil.ReloadUser(t, db, student.UserID).UserEcoPoints)
	assert.Equal(t, 5, testutil.GetStats(t, db).TotalSaplings)

	_, err = svc.Review(ctx, sub.SubmissionID, teacher.UserID, model.SubmissionStatusApproved, nil)
	assert.True(t, errors.Is(err, helper.ErrInvalidState))

	_, err = svc.Review(ctx, uuid.New(), teacher.UserID, model.SubmissionStatusApproved, nil)
	assert.True(t, errors.Is(err, helper.ErrNotFound))

	_, err = svc.Review(ctx, sub.SubmissionID, teacher.UserID, model.SubmissionStatus("maybe"), nil)
	assert.True(t, errors.Is(err, helper.ErrValidation))
}

func TestCreate_ValidationAndDuplicateGuard(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWater, 10)
	svc := service.NewSubmissionService(db, nil)

	tests := []struct {
		name    string
		in      service.CreateInput
		wantErr error
	}{
		{"missing evidence", service.CreateInput{TaskID: task.TaskID, StudentID: student.UserID, Location: "x"}, helper.ErrValidation},
		{"missing location", service.CreateInput{TaskID: task.TaskID, StudentID: student.UserID, Evidence: "https://e/x.jpg"}, helper.ErrValidation},
		{"unknown task", service.CreateInput{TaskID: uuid.New(), StudentID: student.UserID, Evidence: "https://e/x.jpg", Location: "x"}, helper.ErrNotFound},
		{"unknown student", service.CreateInput{TaskID: task.TaskID, StudentID: uuid.New(), Evidence: "https://e/x.jpg", Location: "x"}, helper.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	valid := service.CreateInput{TaskID: task.TaskID, StudentID: student.UserID, Evidence: "https://e/x.jpg", Location: "Kebun"}
	first, err := svc.Create(ctx, valid)
	require.NoError(t, err)

	_, err = svc.Create(ctx, valid)
	assert.True(t, errors.Is(err, helper.ErrConflict))

	// setelah ditolak boleh kirim ulang
	require.NoError(t, db.Model(&model.SubmissionModel{}).
		Where("submission_id = ?", first.SubmissionID).
		Update("submission_status", model.SubmissionStatusRejected).Error)
	_, err = svc.Create(ctx, valid)
	assert.NoError(t, err)
}

func TestList_Filters(t *testing.T) {
	db := testutil.OpenTestDB(t)
	a := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	b := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	t1 := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 10)
	t2 := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 10)
	testutil.CreateSubmission(t, db, a, t1, model.SubmissionStatusPending, "u1")
	testutil.CreateSubmission(t, db, a, t2, model.SubmissionStatusApproved, "u2")
	testutil.CreateSubmission(t, db, b, t1, model.SubmissionStatusPending, "u3")

	svc := service.NewSubmissionService(db, nil)
	ctx := context.Background()

	rows, total, err := svc.List(ctx, service.ListFilter{StudentID: &a.UserID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	_, total, err = svc.List(ctx, service.ListFilter{TaskID: &t1.TaskID, Status: "pending"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	rows, total, err = svc.List(ctx, service.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 1)
}

func TestMLConfidenceRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		v := service.MLConfidence()
		if v < 70 || v > 99 {
			t.Fatalf("out of range: %d", v)
		}
	}
}

func TestDeleteWithReversal_SharedEvidenceKeepsOwnerUpload(t *testing.T) {
	db := testutil.OpenTestDB(t)
	a := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	b := testutil.CreateUser(t, db, userModel.UserRoleStudent, 50)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)

	subA := testutil.CreateSubmission(t, db, a, task, model.SubmissionStatusPending, storedURL)
	require.NoError(t, db.Create(&imageModel.ImageUploadModel{
		ImageUploadURL:          storedURL,
		ImageUploadObjectKey:    "task-images/1700000000000-pohon.webp",
		ImageUploadFilename:     "pohon.jpg",
		ImageUploadContentType:  "image/webp",
		ImageUploadUploadedBy:   a.UserID,
		ImageUploadSubmissionID: &subA.SubmissionID,
	}).Error)
	// baris lama (sebelum ada cek kepemilikan) yang menunjuk URL milik A
	subB := testutil.CreateSubmission(t, db, b, task, model.SubmissionStatusApproved, storedURL)

	called := false
	blob := &helperOSS.MockBlobService{
		IsStoredImageURLFn:  func(string) bool { return true },
		DeleteByPublicURLFn: func(context.Context, string) error { called = true; return nil },
	}
	svc := service.NewSubmissionService(db, blob)

	out, err := svc.DeleteWithReversal(context.Background(), subB.SubmissionID)
	require.NoError(t, err)
	assert.False(t, out.EvidenceDeleted)
	assert.False(t, called, "object still referenced by A")

	var n int64
	require.NoError(t, db.Model(&imageModel.ImageUploadModel{}).
		Where("image_upload_submission_id = ?", subA.SubmissionID).Count(&n).Error)
	assert.EqualValues(t, 1, n, "A's metadata untouched")
	assert.Equal(t, 0, testutil.ReloadUser(t, db, b.UserID).UserEcoPoints)
}

func TestCreate_RejectsForeignEvidence(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	b := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	teacher := testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWater, 10)
	require.NoError(t, db.Create(&imageModel.ImageUploadModel{
		ImageUploadURL:         storedURL,
		ImageUploadObjectKey:   "task-images/1700000000000-pohon.webp",
		ImageUploadFilename:    "pohon.jpg",
		ImageUploadContentType: "image/webp",
		ImageUploadUploadedBy:  a.UserID,
	}).Error)

	blob := &helperOSS.MockBlobService{IsStoredImageURLFn: func(u string) bool { return u == storedURL }}
	svc := service.NewSubmissionService(db, blob)

	_, err := svc.Create(ctx, service.CreateInput{
		TaskID: task.TaskID, StudentID: b.UserID, SubmittedBy: b.UserID,
		Evidence: storedURL, Location: "Kebun",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, helper.ErrForbidden))
	assert.Equal(t, 403, helper.StatusFromError(err))

	// guru yang bukan pengunggah juga tidak bisa meminjam gambar A untuk B
	_, err = svc.Create(ctx, service.CreateInput{
		TaskID: task.TaskID, StudentID: b.UserID, SubmittedBy: teacher.UserID,
		Evidence: storedURL, Location: "Kebun",
	})
	assert.True(t, errors.Is(err, helper.ErrForbidden))

	subA, err := svc.Create(ctx, service.CreateInput{
		TaskID: task.TaskID, StudentID: a.UserID, SubmittedBy: a.UserID,
		Evidence: storedURL, Location: "Kebun",
	})
	require.NoError(t, err)

	var linked int64
	require.NoError(t, db.Model(&imageModel.ImageUploadModel{}).
		Where("image_upload_submission_id = ?", subA.SubmissionID).Count(&linked).Error)
	assert.EqualValues(t, 1, linked)

	// URL yang sudah dipakai submission A tidak bisa dipakai siswa lain
	require.NoError(t, db.Where("image_upload_url = ?", storedURL).Delete(&imageModel.ImageUploadModel{}).Error)
	_, err = svc.Create(ctx, service.CreateInput{
		TaskID: task.TaskID, StudentID: b.UserID, SubmittedBy: b.UserID,
		Evidence: storedURL, Location: "Kebun",
	})
	assert.True(t, errors.Is(err, helper.ErrForbidden))

	var subs int64
	require.NoError(t, db.Model(&model.SubmissionModel{}).Where("submission_student_id = ?", b.UserID).Count(&subs).Error)
	assert.Zero(t, subs)
}

func TestDeleteWithReversal_MissingTaskOrStudent(t *testing.T) {
	tests := []struct {
		name string
		drop func(t *testing.T, db *gorm.DB, student userModel.UserModel, task taskModel.TaskModel)
	}{
		{
			name: "task gone",
			drop: func(t *testing.T, db *gorm.DB, _ userModel.UserModel, task taskModel.TaskModel) {
				require.NoError(t, db.Unscoped().Delete(&taskModel.TaskModel{}, "task_id = ?", task.TaskID).Error)
			},
		},
		{
			name: "student gone",
			drop: func(t *testing.T, db *gorm.DB, student userModel.UserModel, _ taskModel.TaskModel) {
				require.NoError(t, db.Unscoped().Delete(&userModel.UserModel{}, "user_id = ?", student.UserID).Error)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.OpenTestDB(t)
			testutil.SetStats(t, db, 10, 10, 10, 10)
			student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 70, pointService.BadgeFirstStep)
			task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)
			sub := testutil.CreateSubmission(t, db, student, task, model.SubmissionStatusApproved, storedURL)

			called := false
			blob := &helperOSS.MockBlobService{
				IsStoredImageURLFn:  func(string) bool { return true },
				DeleteByPublicURLFn: func(context.Context, string) error { called = true; return nil },
			}
			svc := service.NewSubmissionService(db, blob)
			tt.drop(t, db, student, task)

			_, err := svc.DeleteWithReversal(context.Background(), sub.SubmissionID)
			require.Error(t, err)
			assert.True(t, errors.Is(err, helper.ErrNotFound))
			assert.Equal(t, 404, helper.StatusFromError(err))
			assert.False(t, called)

			_, err = svc.GetByID(context.Background(), sub.SubmissionID)
			assert.NoError(t, err, "submission must survive")
			assert.Equal(t, 10, testutil.GetStats(t, db).TotalSaplings)

			var logs int64
			require.NoError(t, db.Model(&pointModel.UserPointLog{}).Count(&logs).Error)
			assert.Zero(t, logs)

			var u userModel.UserModel
			if err := db.First(&u, "user_id = ?", student.UserID).Error; err == nil {
				assert.Equal(t, 70, u.UserEcoPoints)
				assert.True(t, u.HasBadge(pointService.BadgeFirstStep))
			}
		})
	}
}

func TestDeleteWithReversal_EnergyLeavesStatsUntouched(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.SetStats(t, db, 7, 8, 9, 10)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 40)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryEnergy, 40)
	sub := testutil.CreateSubmission(t, db, student, task, model.SubmissionStatusApproved, "https://example.com/lampu.jpg")

	svc := service.NewSubmissionService(db, nil)
	out, err := svc.DeleteWithReversal(context.Background(), sub.SubmissionID)
	require.NoError(t, err)
	assert.True(t, out.StudentUpdated)
	assert.Equal(t, 40, out.PointsDeducted)
	assert.False(t, out.GlobalStatsUpdated, "energy has no counter")

	s := testutil.GetStats(t, db)
	assert.Equal(t, 7, s.TotalSaplings)
	assert.Equal(t, 8, s.TotalWasteSaved)
	assert.Equal(t, 9, s.TotalStudents)
	assert.Equal(t, 10, s.TotalTasks)
}
