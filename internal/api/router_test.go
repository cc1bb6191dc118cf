package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/api/handlers"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/models"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/internal/service"
	"github.com/sahil-mohite/hackathon-budget-planning-for-senior-citizens/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response string
	err      error
}

func (g *stubGenerator) Generate(_ context.Context, _ string, _ *service.Attachment) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type memUserStore struct {
	users map[string]*models.User
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.users[user.Email] = user
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *memUserStore) UpdateByEmail(_ context.Context, email string, patch map[string]any) error {
	user, ok := s.users[email]
	if !ok {
		return pgx.ErrNoRows
	}
	if phone, ok := patch["phone"].(string); ok {
		user.Phone = phone
	}
	return nil
}

type memBillItemStore struct {
	items []*models.BillItem
}

func (s *memBillItemStore) CreateBatch(_ context.Context, items []*models.BillItem) error {
	s.items = append(s.items, items...)
	return nil
}

func (s *memBillItemStore) ListByUserID(_ context.Context, userID string, limit int) ([]*models.BillItem, error) {
	var out []*models.BillItem
	for _, item := range s.items {
		if item.UserID == userID && len(out) < limit {
			out = append(out, item)
		}
	}
	return out, nil
}

type memGoalStore struct {
	goals map[string]*models.Goal
}

func (s *memGoalStore) Upsert(_ context.Context, goal *models.Goal) error {
	s.goals[goal.UserID+"|"+goal.Month] = goal
	return nil
}

func (s *memGoalStore) GetByUserMonth(_ context.Context, userID, month string) (*models.Goal, error) {
	goal, ok := s.goals[userID+"|"+month]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return goal, nil
}

func newTestApp(t *testing.T, generator *stubGenerator) *appHarness {
	t.Helper()
	nop := zap.NewNop()

	users := &memUserStore{users: make(map[string]*models.User)}
	items := &memBillItemStore{}
	goals := &memGoalStore{goals: make(map[string]*models.Goal)}

	jwtManager := auth.NewJWTManager("test-secret", 30*time.Minute)

	authService := service.NewAuthService(users, jwtManager, nop)
	userService := service.NewUserService(users, nop)
	billService := service.NewBillService(items, generator, nop)
	transcriptionService := service.NewTranscriptionService(generator, nop)
	insightService := service.NewInsightService(goals, items, generator, nop)

	app := SetupRouter(
		handlers.NewAuthHandler(authService, nop),
		handlers.NewUserHandler(userService, nop),
		handlers.NewBillHandler(billService, transcriptionService, 15, nop),
		handlers.NewInsightHandler(insightService, nop),
		jwtManager,
		15,
		nop,
	)

	return &appHarness{t: t, app: app}
}

type appHarness struct {
	t   *testing.T
	app *fiber.App
}

func (h *appHarness) do(method, path, token string, body any) *http.Response {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	return resp
}

func (h *appHarness) signUpAndIn(email string) string {
	h.t.Helper()

	resp := h.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"firstName": "Alice",
		"lastName":  "Smith",
		"email":     email,
		"password":  "s3cret",
	})
	require.Equal(h.t, http.StatusCreated, resp.StatusCode)

	resp = h.do(http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    email,
		"password": "s3cret",
	})
	require.Equal(h.t, http.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&token))
	require.Equal(h.t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestRouter_BodyLimitCoversUploadCap(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})

	// uploads up to the configured 15 MB must reach the handlers, so the
	// app-level body limit sits above that cap
	assert.GreaterOrEqual(t, h.app.Config().BodyLimit, 15<<20)
}

func TestRouter_Health(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})

	resp := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_SignupSigninFlow(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})
	token := h.signUpAndIn("alice@example.com")

	resp := h.do(http.MethodGet, "/getUserData", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "alice@example.com", profile["email"])
}

func TestRouter_DuplicateSignup(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})
	h.signUpAndIn("alice@example.com")

	resp := h.do(http.MethodPost, "/auth/signup", "", map[string]any{
		"email":    "alice@example.com",
		"password": "another",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_WrongPassword(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})
	h.signUpAndIn("alice@example.com")

	resp := h.do(http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})

	for _, path := range []string{"/home", "/getUserData", "/expenses/alice@example.com"} {
		resp := h.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}

	resp := h.do(http.MethodGet, "/home", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ProcessTextExplanation(t *testing.T) {
	gen := &stubGenerator{response: `{"items": [{"item_name": "Milk", "quantity": 2, "unit_price": 1.25, "category": "Food"}]}`}
	h := newTestApp(t, gen)
	token := h.signUpAndIn("alice@example.com")

	resp := h.doMultipart("/process", token, map[string]string{
		"user_explanation": "bought two cartons of milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var stored []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "Milk", stored[0]["item_name"])
	assert.Equal(t, "alice@example.com", stored[0]["user_id"])
	assert.Equal(t, "text", stored[0]["input_type"])
}

func TestRouter_ProcessNoInput(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})
	token := h.signUpAndIn("alice@example.com")

	resp := h.doMultipart("/process", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ProcessConversational(t *testing.T) {
	gen := &stubGenerator{response: "That's not a bill, but hello!"}
	h := newTestApp(t, gen)
	token := h.signUpAndIn("alice@example.com")

	resp := h.doMultipart("/process", token, map[string]string{
		"user_explanation": "hello there",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "That's not a bill, but hello!", body["message"])
}

func TestRouter_ProcessUnconfiguredModel(t *testing.T) {
	gen := &stubGenerator{err: service.ErrNotConfigured}
	h := newTestApp(t, gen)
	token := h.signUpAndIn("alice@example.com")

	resp := h.doMultipart("/process", token, map[string]string{
		"user_explanation": "groceries",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_ExpensesSelfOnly(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})
	token := h.signUpAndIn("alice@example.com")

	resp := h.do(http.MethodGet, "/expenses/bob@example.com", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// own history, but nothing stored yet
	resp = h.do(http.MethodGet, "/expenses/alice@example.com", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_GoalAndInsights(t *testing.T) {
	gen := &stubGenerator{response: `{"items": [{"item_name": "Milk", "quantity": 2, "unit_price": 1.25, "category": "Food"}]}`}
	h := newTestApp(t, gen)
	token := h.signUpAndIn("alice@example.com")

	// insights before any goal is set
	resp := h.do(http.MethodGet, "/insights/alice@example.com", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	month := time.Now().UTC().Format("2006-01")
	resp = h.do(http.MethodPost, "/goals", token, map[string]any{
		"goal_description": "Save $200",
		"month":            month,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// store one expense, then ask for insights
	mresp := h.doMultipart("/process", token, map[string]string{
		"user_explanation": "milk",
	})
	require.Equal(t, http.StatusCreated, mresp.StatusCode)

	gen.response = "1. Buy less milk."
	resp = h.do(http.MethodGet, "/insights/alice@example.com", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var insight map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&insight))
	assert.Equal(t, "Save $200", insight["goal_description"])
	assert.Equal(t, "1. Buy less milk.", insight["insights"])
}

func TestRouter_GoalValidation(t *testing.T) {
	h := newTestApp(t, &stubGenerator{})
	token := h.signUpAndIn("alice@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing description", map[string]any{"month": "2025-06"}},
		{"bad month", map[string]any{"goal_description": "Save", "month": "June 2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := h.do(http.MethodPost, "/goals", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRouter_TranscribeRejectsNonAudio(t *testing.T) {
	h := newTestApp(t, &stubGenerator{response: "hello world"})
	token := h.signUpAndIn("alice@example.com")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="audio_file"; filename="notes.txt"`},
		"Content-Type":        {"text/plain"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("not audio"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Transcribe(t *testing.T) {
	h := newTestApp(t, &stubGenerator{response: "pick up prescriptions on friday"})
	token := h.signUpAndIn("alice@example.com")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="audio_file"; filename="memo.wav"`},
		"Content-Type":        {"audio/wav"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-wav-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "pick up prescriptions on friday", body["text"])
}

// doMultipart posts form fields as multipart/form-data, the shape the bill
// endpoints accept.
func (h *appHarness) doMultipart(path, token string, fields map[string]string) *http.Response {
	h.t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(h.t, writer.WriteField(key, value))
	}
	require.NoError(h.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	return resp
}
