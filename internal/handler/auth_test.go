package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/autocare360/autocare-go/internal/config"
	"github.com/autocare360/autocare-go/internal/middleware"
	"github.com/autocare360/autocare-go/internal/model"
	"github.com/autocare360/autocare-go/internal/service"
	"github.com/autocare360/autocare-go/internal/telemetry"
	"github.com/autocare360/autocare-go/internal/testutil"
)

const testSecret = "test-secret"

// newTestServer wires the full HTTP surface against the in-memory
// store, mirroring the router in cmd/api.
func newTestServer(t *testing.T) (http.Handler, *testutil.MemoryUserStore, *telemetry.Dataset) {
	t.Helper()

	store := testutil.NewMemoryUserStore()
	dataset := testutil.Dataset(t)

	authService := service.NewAuthService(store, dataset, testSecret,
		config.RegisterTokenExpiry, config.LoginTokenExpiry)
	authHandler := NewAuthHandler(authService)

	dashboardService := service.NewDashboardService(store, dataset)
	dashboardHandler := NewDashboardHandler(dashboardService)

	auth := middleware.NewAuthenticator(store, testSecret)

	r := chi.NewRouter()
	r.Post("/api/register", authHandler.HandleRegister)
	r.Post("/api/login", authHandler.HandleLogin)
	r.Group(func(r chi.Router) {
		r.Use(auth.Require)
		r.Get("/api/dashboard", dashboardHandler.HandleOverview)
		r.Get("/api/dashboard/vehicle", dashboardHandler.HandleVehicle)
		r.Get("/api/dashboard/profile", dashboardHandler.HandleProfile)
	})

	return r, store, dataset
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestRegister_Created(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/register", testutil.RegisterRequest(), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp model.RegisterResponse
	decodeBody(t, rec, &resp)
	if resp.Message != "User registered successfully" {
		t.Errorf("message = %q, want %q", resp.Message, "User registered successfully")
	}
	if resp.Token == "" {
		t.Error("expected token in registration response")
	}
	if strings.Contains(rec.Body.String(), "pw123456") {
		t.Error("response echoes the plaintext password")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv, store, _ := newTestServer(t)

	if rec := doJSON(t, srv, http.MethodPost, "/api/register", testutil.RegisterRequest(), nil); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", rec.Code)
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/register", testutil.RegisterRequest(), nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["error"] != "Email already registered" {
		t.Errorf("error = %q, want %q", resp["error"], "Email already registered")
	}
	if store.Count() != 1 {
		t.Errorf("store count = %d, want 1", store.Count())
	}
}

func TestRegister_MissingField(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := testutil.RegisterRequest()
	req.Email = ""

	rec := doJSON(t, srv, http.MethodPost, "/api/register", req, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["error"] != "email is required" {
		t.Errorf("error = %q, want %q", resp["error"], "email is required")
	}
}

func TestRegister_OversizedBody(t *testing.T) {
	srv, store, _ := newTestServer(t)

	// Just past the 1MB cap; padding lives in an unknown field so the
	// payload stays valid JSON.
	body := `{"email":"ava@example.com","padding":"` + strings.Repeat("x", 1<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}

	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["error"] != "request body too large" {
		t.Errorf("error = %q, want %q", resp["error"], "request body too large")
	}
	if store.Count() != 0 {
		t.Errorf("store count = %d, want 0", store.Count())
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/login", model.LoginRequest{Email: "a@x.com"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp map[string]string
	decodeBody(t, rec, &resp)
	if resp["error"] != "Email and password are required" {
		t.Errorf("error = %q, want %q", resp["error"], "Email and password are required")
	}
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := testutil.RegisterRequest()
	req.Email = "a@x.com"
	if rec := doJSON(t, srv, http.MethodPost, "/api/register", req, nil); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", rec.Code)
	}

	wrongPassword := doJSON(t, srv, http.MethodPost, "/api/login",
		model.LoginRequest{Email: "a@x.com", Password: "wrongpw"}, nil)
	unknownUser := doJSON(t, srv, http.MethodPost, "/api/login",
		model.LoginRequest{Email: "nobody@x.com", Password: "pw123456"}, nil)

	for name, rec := range map[string]*httptest.ResponseRecorder{
		"wrong password": wrongPassword,
		"unknown user":   unknownUser,
	} {
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
		var resp map[string]string
		decodeBody(t, rec, &resp)
		if resp["error"] != "Invalid email or password" {
			t.Errorf("%s: error = %q, want %q", name, resp["error"], "Invalid email or password")
		}
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := testutil.RegisterRequest()
	req.Email = "a@x.com"
	req.Password = "pw123456"

	rec := doJSON(t, srv, http.MethodPost, "/api/register", req, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/login",
		model.LoginRequest{Email: "a@x.com", Password: "pw123456"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp model.LoginResponse
	decodeBody(t, rec, &resp)
	if resp.Token == "" {
		t.Error("expected token in login response")
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("user.email = %q, want %q", resp.User.Email, "a@x.com")
	}
}
