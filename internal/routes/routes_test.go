package routes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/gymgoers-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	app  *fiber.App
	logs *repository.MemorySystemLogRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		AuthRateLimit:     1000,
		AuthRateLimitSpan: time.Minute,
		MetricsEnabled:    true,
	}
	metrics.Register()

	tokens, err := auth.NewTokenService(base64.StdEncoding.EncodeToString([]byte(strings.Repeat("g", 32))), time.Hour)
	require.NoError(t, err)

	users := repository.NewMemoryUserRepository()
	groups := repository.NewMemoryGymGroupRepository()
	logs := repository.NewMemorySystemLogRepository()

	userService := services.NewUserService(users, auth.NewBcryptHasher(bcrypt.MinCost))
	groupService := services.NewGymGroupService(groups, users)
	authService := services.NewAuthService(userService, tokens)

	app := NewApp(nil)
	app.Use(middleware.Metrics())
	Setup(app, cfg, tokens, users,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(nil),
		handlers.NewUserHandler(userService),
		handlers.NewGymGroupHandler(groupService),
		handlers.NewAdminHandler(logs),
	)
	return &testServer{app: app, logs: logs}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (s *testServer) signUpAndIn(t *testing.T, username string, roles ...string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"username":     username,
		"emailAddress": username + "@example.com",
		"password":     "fakepass",
		"role":         roles,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": username,
		"password": "fakepass",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var jwt dto.JwtResponse
	require.NoError(t, json.Unmarshal(body, &jwt))
	return jwt.Token
}

func messageOf(t *testing.T, body []byte) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &resp))
	msg, _ := resp["message"].(string)
	return msg
}

func TestSignUpAndSignIn(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice", "emailAddress": "alice@example.com", "password": "fakepass",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User registered successfully!", messageOf(t, body))

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice", "emailAddress": "other@example.com", "password": "fakepass",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error: Username is already taken!", messageOf(t, body))

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "alice2", "emailAddress": "alice@example.com", "password": "fakepass",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error: Email is already in use!", messageOf(t, body))

	status, body = s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "alice", "password": "fakepass",
	})
	require.Equal(t, http.StatusOK, status)
	var jwt dto.JwtResponse
	require.NoError(t, json.Unmarshal(body, &jwt))
	assert.NotEmpty(t, jwt.Token)
	assert.Equal(t, "Bearer", jwt.Type)
	assert.Equal(t, "alice", jwt.Username)
	assert.Equal(t, []string{"USER"}, jwt.Roles)

	status, _ = s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "alice", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "ghost", "password": "fakepass",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{"password": "fakepass"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/users/alice/workouts", "/users/alice/weeklytotal", "/gymgroups/alice", "/admin/logs"} {
		status, _ := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)

		status, _ = s.do(t, http.MethodGet, path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}

	status, _ := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestWorkoutFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUpAndIn(t, "alice")

	status, body := s.do(t, http.MethodGet, "/users/alice/workouts", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = s.do(t, http.MethodPost, "/users/alice/workouts", token, map[string]interface{}{
		"_id":         "client-chosen",
		"dateCreated": "1999-01-01T00:00:00Z",
		"exercises": []map[string]interface{}{
			{"exerciseName": "Squat", "sets": 2, "reps": 2, "weight": 20},
			{"exerciseName": "Plank", "sets": 1, "reps": 1, "weight": 0, "time": 60},
		},
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var user models.User
	require.NoError(t, json.Unmarshal(body, &user))
	require.Len(t, user.Workouts, 1)
	workoutID := user.Workouts[0].ID
	assert.NotEqual(t, "client-chosen", workoutID)
	assert.WithinDuration(t, time.Now(), user.Workouts[0].DateCreated, time.Minute)
	assert.NotContains(t, string(body), "fakepass")
	assert.NotContains(t, string(body), `"password"`)

	status, body = s.do(t, http.MethodGet, "/users/alice/weeklytotal", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "80", string(body))

	status, _ = s.do(t, http.MethodDelete, "/users/alice/workouts/unknown", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodDelete, "/users/alice/workouts/"+workoutID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Empty(t, user.Workouts)

	status, body = s.do(t, http.MethodGet, "/users/alice/weeklytotal", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", string(body))
}

func TestWorkoutErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.signUpAndIn(t, "alice")

	status, body := s.do(t, http.MethodPost, "/users/alice/workouts", token, map[string]interface{}{
		"exercises": []interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "workout needs valid exercises", messageOf(t, body))

	status, body = s.do(t, http.MethodPost, "/users/alice/workouts", token, map[string]interface{}{
		"exercises": []map[string]interface{}{{"sets": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "exercise needs a name", messageOf(t, body))

	status, _ = s.do(t, http.MethodPost, "/users/ghost/workouts", token, map[string]interface{}{
		"exercises": []map[string]interface{}{{"exerciseName": "Row"}},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, "/users/ghost/workouts", token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(t, http.MethodDelete, "/users/ghost/workouts/any", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error: User not found", messageOf(t, body))

	status, _ = s.do(t, http.MethodGet, "/users/ghost/weeklytotal", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGymGroupFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUpAndIn(t, "alice")
	bob := s.signUpAndIn(t, "bob")

	status, body := s.do(t, http.MethodGet, "/gymgroups/bob", bob, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No GymGroups found", messageOf(t, body))

	status, body = s.do(t, http.MethodPost, "/gymgroups/alice", alice, map[string]string{"groupName": "Team"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var group models.GymGroup
	require.NoError(t, json.Unmarshal(body, &group))
	assert.Equal(t, []string{"alice"}, []string(group.Admins))

	status, body = s.do(t, http.MethodPost, "/gymgroups/alice", alice, map[string]string{"groupName": "Team"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "gym group with that name exists", messageOf(t, body))

	status, body = s.do(t, http.MethodPost, "/gymgroups/alice", alice, map[string]string{"groupName": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "gym group must have a name", messageOf(t, body))

	for i := 0; i < 2; i++ {
		status, body = s.do(t, http.MethodPost, "/gymgroups/bob/Team", bob, nil)
		require.Equal(t, http.StatusOK, status)
		require.NoError(t, json.Unmarshal(body, &group))
		assert.Equal(t, []string{"alice", "bob"}, []string(group.Members))
	}

	status, _ = s.do(t, http.MethodPost, "/gymgroups/bob/Nowhere", bob, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = s.do(t, http.MethodGet, "/gymgroups/bob", bob, nil)
	require.Equal(t, http.StatusOK, status)
	var groups []models.GymGroup
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Team", groups[0].GroupName)
}

func TestAdminLogsRequiresAdminRole(t *testing.T) {
	s := newTestServer(t)
	user := s.signUpAndIn(t, "alice")
	admin := s.signUpAndIn(t, "root", "admin")

	require.NoError(t, s.logs.Insert(context.Background(), []models.SystemLog{
		{Level: "ERROR", Message: "disk full", Timestamp: time.Now()},
		{Level: "WARN", Message: "slow query", Timestamp: time.Now()},
	}))

	status, _ := s.do(t, http.MethodGet, "/admin/logs", user, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := s.do(t, http.MethodGet, "/admin/logs?level=error", admin, nil)
	require.Equal(t, http.StatusOK, status)
	var logs []models.SystemLog
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "disk full", logs[0].Message)

	status, _ = s.do(t, http.MethodGet, "/admin/logs?since=yesterday", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/health", "", nil)

	status, body := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "gymgoers_http_requests_total")
}

func TestEscapedPathParameters(t *testing.T) {
	s := newTestServer(t)
	alice := s.signUpAndIn(t, "alice")
	bob := s.signUpAndIn(t, "bob")

	status, body := s.do(t, http.MethodPost, "/gymgroups/alice", alice, map[string]string{"groupName": "Iron Team"})
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = s.do(t, http.MethodPost, "/gymgroups/bob/Iron%20Team", bob, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var group models.GymGroup
	require.NoError(t, json.Unmarshal(body, &group))
	assert.Equal(t, "Iron Team", group.GroupName)
	assert.Equal(t, []string{"alice", "bob"}, []string(group.Members))

	status, body = s.do(t, http.MethodPost, "/gymgroups/alice", alice, map[string]string{"groupName": "Güç"})
	require.Equal(t, http.StatusCreated, status, string(body))
	status, _ = s.do(t, http.MethodPost, "/gymgroups/bob/G%C3%BC%C3%A7", bob, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": "josé", "emailAddress": "jose@example.com", "password": "fakepass",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	status, body = s.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"username": "josé", "password": "fakepass",
	})
	require.Equal(t, http.StatusOK, status, string(body))
	var jwt dto.JwtResponse
	require.NoError(t, json.Unmarshal(body, &jwt))
	jose := jwt.Token

	status, body = s.do(t, http.MethodGet, "/users/jos%C3%A9/workouts", jose, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `[]`, string(body))
}

func TestSignUpRejectsPasswordOverBcryptLimit(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username":     "alice",
		"emailAddress": "alice@example.com",
		"password":     strings.Repeat("é", 40),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error: password cannot be longer than 72 bytes", messageOf(t, body))
}
