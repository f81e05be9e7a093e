package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"
	"tracker/backend/config"
	"tracker/backend/routes"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	activity *services.ActivityService
)

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file:controllers_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}

	activity = services.NewActivityService(db, log.New(io.Discard, "", 0))
	activity.Now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg, activity)
}

func doJSON(t *testing.T, method, target, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func registerUser(t *testing.T) string {
	t.Helper()

	name := "user-" + uuid.NewString()[:8]
	status, result := doJSON(t, "POST", "/api/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, result["token"])
	return result["token"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	name := "login-" + uuid.NewString()[:8]
	status, result := doJSON(t, "POST", "/api/auth/register", "", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])

	status, result = doJSON(t, "POST", "/api/auth/login", "", map[string]string{
		"username": name,
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, result["token"])

	status, _ = doJSON(t, "POST", "/api/auth/login", "", map[string]string{
		"username": name,
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRoutesRequireAuth(t *testing.T) {
	status, _ := doJSON(t, "GET", "/api/courses/", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doJSON(t, "GET", "/api/streak", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCourseCRUD(t *testing.T) {
	token := registerUser(t)

	status, result := doJSON(t, "POST", "/api/courses/", token, map[string]interface{}{
		"title":    "Go From Scratch",
		"platform": "Coursera",
		"tags":     []string{"go", "backend"},
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Course created", result["message"])

	course := result["course"].(map[string]interface{})
	assert.Equal(t, "enrolled", course["status"])
	courseID := int(course["id"].(float64))

	status, result = doJSON(t, "PUT", "/api/courses/"+itoa(courseID), token, map[string]interface{}{
		"status":                "completed",
		"completion_percentage": 100,
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "completed", result["course"].(map[string]interface{})["status"])

	status, result = doJSON(t, "GET", "/api/courses/"+itoa(courseID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Go From Scratch", result["course"].(map[string]interface{})["title"])

	status, _ = doJSON(t, "DELETE", "/api/courses/"+itoa(courseID), token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, "GET", "/api/courses/"+itoa(courseID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCoursesAreScopedToOwner(t *testing.T) {
	tokenA := registerUser(t)
	tokenB := registerUser(t)

	status, result := doJSON(t, "POST", "/api/courses/", tokenA, map[string]interface{}{
		"title": "Private Course",
	})
	require.Equal(t, fiber.StatusOK, status)
	courseID := int(result["course"].(map[string]interface{})["id"].(float64))

	status, _ = doJSON(t, "GET", "/api/courses/"+itoa(courseID), tokenB, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestGoalAchieve(t *testing.T) {
	token := registerUser(t)

	status, result := doJSON(t, "POST", "/api/goals/", token, map[string]interface{}{
		"title":    "Ship side project",
		"deadline": "2024-06-01",
	})
	require.Equal(t, fiber.StatusOK, status)
	goal := result["goal"].(map[string]interface{})
	assert.Equal(t, "pending", goal["status"])
	goalID := int(goal["id"].(float64))

	status, result = doJSON(t, "POST", "/api/goals/"+itoa(goalID)+"/achieve", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "achieved", result["goal"].(map[string]interface{})["status"])
}

func TestBacklogPromote(t *testing.T) {
	token := registerUser(t)

	status, result := doJSON(t, "POST", "/api/backlog/", token, map[string]interface{}{
		"title":    "Learn Rust",
		"category": "course",
		"priority": "high",
	})
	require.Equal(t, fiber.StatusOK, status)
	itemID := int(result["item"].(map[string]interface{})["id"].(float64))

	status, result = doJSON(t, "POST", "/api/backlog/"+itoa(itemID)+"/promote", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "completed", result["item"].(map[string]interface{})["status"])
	assert.Equal(t, "Learn Rust", result["created"].(map[string]interface{})["title"])

	// The promoted course shows up in the course list
	req := httptest.NewRequest("GET", "/api/courses/", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var courses []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Learn Rust", courses[0]["title"])
}

func TestStreakEndpointReflectsActivity(t *testing.T) {
	token := registerUser(t)

	status, result := doJSON(t, "GET", "/api/streak", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(0), result["streak"])
	assert.Equal(t, false, result["has_logged_today"])

	// Creating a skill records today's activity
	status, _ = doJSON(t, "POST", "/api/skills/", token, map[string]interface{}{
		"name": "Go",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result = doJSON(t, "GET", "/api/streak", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), result["streak"])
	assert.Equal(t, true, result["has_logged_today"])
}

func TestDashboard(t *testing.T) {
	token := registerUser(t)

	status, _ := doJSON(t, "POST", "/api/projects/", token, map[string]interface{}{
		"title": "Portfolio site",
		"tags":  []string{"web"},
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, "POST", "/api/certificates/", token, map[string]interface{}{
		"name":   "Cloud Practitioner",
		"issuer": "AWS",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, result := doJSON(t, "GET", "/api/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	counts := result["counts"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["projects"])
	assert.Equal(t, float64(1), counts["certificates"])

	streak := result["streak"].(map[string]interface{})
	assert.Equal(t, true, streak["has_logged_today"])

	recent := result["recent_activity"].([]interface{})
	require.Len(t, recent, 1)
	entry := recent[0].(map[string]interface{})
	assert.Equal(t, "2024-03-15", entry["date"])
	assert.Equal(t, float64(1), entry["value"])
}

func TestProfile(t *testing.T) {
	token := registerUser(t)

	status, result := doJSON(t, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])

	status, result = doJSON(t, "PUT", "/api/user/profile", token, map[string]interface{}{
		"full_name": "Test User",
		"bio":       "Learning in public",
	})
	require.Equal(t, fiber.StatusOK, status)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "Test User", data["full_name"])
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
