package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workout-scheduler/internal/repository/memory"
	"workout-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := memory.NewWorkoutCatalog(memory.DefaultWorkouts())
	scheduleService := service.NewScheduleService(catalog, memory.NewScheduleRepository())
	authService := service.NewAuthService(memory.NewUserRepository(), testJWTSecret, time.Hour)

	router := gin.New()
	SetupRoutes(router, testJWTSecret, authService, scheduleService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func obtainToken(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    "user@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d body %s", w.Code, w.Body.String())
	}
	var resp LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}
	return resp.Token
}

func TestSchedules_RequireAuthentication(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/schedules", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestScheduleLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := obtainToken(t, router)

	// Seed: one schedule on 2024-01-01, AFTERNOON.
	w := doJSON(t, router, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"workoutId":     1,
		"scheduledDay":  "2024-01-01",
		"scheduledTime": "AFTERNOON",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed create: status %d body %s", w.Code, w.Body.String())
	}
	var seeded ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &seeded); err != nil {
		t.Fatalf("decode seed: %v", err)
	}
	if seeded.ID == "" {
		t.Fatalf("created schedule has no id")
	}
	if seeded.ScheduledDay != "1704067200000" {
		t.Fatalf("scheduledDay must serialize as epoch millis, got %q", seeded.ScheduledDay)
	}
	if seeded.Workout.ID != 1 || seeded.Workout.Name != "workout 1" {
		t.Fatalf("resolved workout wrong: %+v", seeded.Workout)
	}

	// Range query returns exactly the seeded record.
	w = doJSON(t, router, http.MethodGet, "/api/v1/schedules?start=2023-12-30&end=2024-01-05", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("range query: status %d body %s", w.Code, w.Body.String())
	}
	var listed []ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != seeded.ID {
		t.Fatalf("expected exactly the seeded schedule, got %+v", listed)
	}

	// A second schedule on the same day is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"workoutId":     2,
		"scheduledDay":  "2024-01-01",
		"scheduledTime": "MORNING",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate create: status %d body %s", w.Code, w.Body.String())
	}
	var errResp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp["error"] != "Workout schedule already exists for this day" {
		t.Fatalf("unexpected error message %q", errResp["error"])
	}

	// A different day succeeds and gets a fresh id.
	w = doJSON(t, router, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"workoutId":     1,
		"scheduledDay":  "2024-03-18",
		"scheduledTime": "MORNING",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("second create: status %d body %s", w.Code, w.Body.String())
	}
	var second ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode second: %v", err)
	}
	if second.ID == seeded.ID {
		t.Fatalf("second schedule reused the seeded id")
	}

	// Partial update: only scheduledTime changes.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/schedules/"+seeded.ID, token, gin.H{
		"scheduledTime": "MORNING",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", w.Code, w.Body.String())
	}
	var updated ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.ScheduledTime != "MORNING" {
		t.Fatalf("scheduledTime not updated: %v", updated.ScheduledTime)
	}
	if updated.WorkoutID != 1 {
		t.Fatalf("workoutId must be untouched by partial update, got %d", updated.WorkoutID)
	}
	if updated.ScheduledDay != "1704067200000" {
		t.Fatalf("scheduledDay must not move on update, got %q", updated.ScheduledDay)
	}

	// Delete reports true, then false.
	w = doJSON(t, router, http.MethodDelete, "/api/v1/schedules/"+seeded.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status %d body %s", w.Code, w.Body.String())
	}
	var del DeleteScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &del); err != nil {
		t.Fatalf("decode delete: %v", err)
	}
	if !del.Deleted {
		t.Fatalf("first delete must report true")
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/schedules/"+seeded.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second delete: status %d body %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &del); err != nil {
		t.Fatalf("decode second delete: %v", err)
	}
	if del.Deleted {
		t.Fatalf("second delete must report false")
	}
}

func TestUpdateSchedule_ZeroWorkoutIDIsIgnored(t *testing.T) {
	router := newTestRouter(t)
	token := obtainToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"workoutId":     1,
		"scheduledDay":  "2024-01-01",
		"scheduledTime": "AFTERNOON",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var created ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	// An explicit zero in the body must not detach the schedule from its
	// workout; subsequent reads would fail to resolve workout 0.
	w = doJSON(t, router, http.MethodPatch, "/api/v1/schedules/"+created.ID, token, gin.H{
		"workoutId": 0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", w.Code, w.Body.String())
	}
	var updated ScheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.WorkoutID != 1 {
		t.Fatalf("zero workoutId must leave the field untouched, got %d", updated.WorkoutID)
	}

	// The list endpoint still resolves every record.
	w = doJSON(t, router, http.MethodGet, "/api/v1/schedules", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list after update: status %d body %s", w.Code, w.Body.String())
	}
}

func TestGetSchedule_AbsenceIsNullBody(t *testing.T) {
	router := newTestRouter(t)
	token := obtainToken(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/schedules/no-such-id", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != "null" {
		t.Fatalf("expected literal null body, got %q", body)
	}
}

func TestCreateSchedule_UnknownWorkout(t *testing.T) {
	router := newTestRouter(t)
	token := obtainToken(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/schedules", token, gin.H{
		"workoutId":     99,
		"scheduledDay":  "2024-01-01",
		"scheduledTime": "MORNING",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", w.Code, w.Body.String())
	}
	var errResp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp["error"] != "Workout does not exist" {
		t.Fatalf("unexpected error message %q", errResp["error"])
	}
}

func TestGetSchedules_RangeParamsMustPair(t *testing.T) {
	router := newTestRouter(t)
	token := obtainToken(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/schedules?start=2024-01-01", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for lone start, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/v1/schedules?start=January&end=2024-01-05", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed start, got %d", w.Code)
	}
}

func TestGetWorkouts_ListsCatalog(t *testing.T) {
	router := newTestRouter(t)
	token := obtainToken(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/workouts", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("workouts: status %d body %s", w.Code, w.Body.String())
	}
	var workouts []WorkoutResponse
	if err := json.Unmarshal(w.Body.Bytes(), &workouts); err != nil {
		t.Fatalf("decode workouts: %v", err)
	}
	if len(workouts) != 2 || workouts[0].Name != "workout 1" {
		t.Fatalf("unexpected catalog %+v", workouts)
	}
}
