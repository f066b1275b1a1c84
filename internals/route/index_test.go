package routes_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	userModel "ecoquest_backend/internals/features/users/user/model"
	"ecoquest_backend/internals/middlewares"
	routes "ecoquest_backend/internals/route"
	"ecoquest_backend/internals/testutil"
)

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Data      map[string]any      `json:"data"`
	Errors    map[string][]string `json:"errors"`
}

func newApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middlewares.ErrorHandler,
	})
	routes.SetupRoutes(app, db, nil)
	return app, db
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func TestPublicStats_Baseline(t *testing.T) {
	app, _ := newApp(t)

	code, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/public/stats", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1250, env.Data["total_saplings"])
	assert.EqualValues(t, 3400, env.Data["total_waste_saved"])
	assert.EqualValues(t, 850, env.Data["total_students"])
	assert.EqualValues(t, 45, env.Data["total_tasks"])
}

func TestAuthGuards(t *testing.T) {
	app, db := newApp(t)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)

	code, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/u/submissions/list", nil))
	assert.Equal(t, http.StatusUnauthorized, code)

	req := httptest.NewRequest(http.MethodDelete, "/api/t/submissions/"+student.UserID.String(), nil)
	req.Header.Set("Authorization", testutil.BearerFor(t, student))
	code, env := do(t, app, req)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.ErrorCode)

	req = httptest.NewRequest(http.MethodGet, "/api/a/stats/overview", nil)
	req.Header.Set("Authorization", testutil.BearerFor(t, student))
	code, _ = do(t, app, req)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestAuthGuards_RoleFromDatabase(t *testing.T) {
	app, db := newApp(t)
	teacher := testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	bearer := testutil.BearerFor(t, teacher)

	target := "/api/t/submissions/" + uuid.NewString()

	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", bearer)
	code, _ := do(t, app, req)
	require.Equal(t, http.StatusNotFound, code, "guard lolos, submission memang tidak ada")

	// diturunkan jadi student; token lama masih berisi role teacher
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("user_id = ?", teacher.UserID).
		Update("user_role", userModel.UserRoleStudent).Error)

	req = httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", bearer)
	code, env := do(t, app, req)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", env.ErrorCode)
}

func TestDeleteSubmission_HTTP(t *testing.T) {
	app, db := newApp(t)
	teacher := testutil.CreateUser(t, db, userModel.UserRoleTeacher, 0)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 50, "First Step")
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryPlanting, 50)
	approved := testutil.CreateSubmission(t, db, student, task, submissionModel.SubmissionStatusApproved, "https://example.com/e1.jpg")
	pending := testutil.CreateSubmission(t, db, student, task, submissionModel.SubmissionStatusPending, "https://example.com/e2.jpg")
	bearer := testutil.BearerFor(t, teacher)

	del := func(id string) (int, envelope) {
		req := httptest.NewRequest(http.MethodDelete, "/api/t/submissions/"+id, nil)
		req.Header.Set("Authorization", bearer)
		return do(t, app, req)
	}

	code, env := del(approved.SubmissionID.String())
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "Submission deleted and points reversed successfully", env.Message)
	assert.EqualValues(t, 50, env.Data["points_deducted"])
	assert.Equal(t, true, env.Data["student_updated"])
	assert.Equal(t, true, env.Data["global_stats_updated"])
	assert.Zero(t, testutil.ReloadUser(t, db, student.UserID).UserEcoPoints)
	assert.Equal(t, 1249, testutil.GetStats(t, db).TotalSaplings)

	code, _ = del(approved.SubmissionID.String())
	assert.Equal(t, http.StatusNotFound, code)

	code, env = del(pending.SubmissionID.String())
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "BAD_REQUEST", env.ErrorCode)

	code, _ = del("not-a-uuid")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestCreateSubmission_MultipartWithoutStorage(t *testing.T) {
	app, db := newApp(t)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 20)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("task_id", task.TaskID.String()))
	require.NoError(t, w.WriteField("location", "Bandung"))
	fw, err := w.CreateFormFile("image", "bukti.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG fake"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/u/submissions", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", testutil.BearerFor(t, student))

	code, env := do(t, app, req)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.ErrorCode)

	var n int64
	db.Model(&submissionModel.SubmissionModel{}).Count(&n)
	assert.Zero(t, n)
}

func TestCreateSubmission_JSON(t *testing.T) {
	app, db := newApp(t)
	student := testutil.CreateUser(t, db, userModel.UserRoleStudent, 0)
	task := testutil.CreateTask(t, db, taskModel.TaskCategoryWaste, 20)

	payload := `{"task_id":"` + task.TaskID.String() + `","evidence":"https://example.com/bukti.jpg","location":"Bandung"}`
	req := httptest.NewRequest(http.MethodPost, "/api/u/submissions", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Authorization", testutil.BearerFor(t, student))

	code, env := do(t, app, req)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, "pending", env.Data["submission_status"])

	// pending kedua untuk task yang sama ditolak
	req = httptest.NewRequest(http.MethodPost, "/api/u/submissions", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Authorization", testutil.BearerFor(t, student))
	code, _ = do(t, app, req)
	assert.Equal(t, http.StatusConflict, code)
}
