package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gamevault/catalog-api/internal/api/handler"
	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/service"
)

// The prometheus middleware registers its collectors in the default registry,
// so the full server is assembled exactly once and shared by the scenario.
var (
	buildOnce  sync.Once
	testServer *echo.Echo
)

const (
	cookieName = "gamevault_token"
	jwtSecret  = "test-secret"
)

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	r.nextID++
	clone := *user
	clone.ID = strconv.Itoa(r.nextID)
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; !exists {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.Username] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[username]; !exists {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

type memGameRepo struct {
	mu     sync.Mutex
	games  map[string]*domain.Game
	nextID int
}

func (r *memGameRepo) FindAll(context.Context) ([]*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Game, 0, len(r.games))
	for _, g := range r.games {
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memGameRepo) FindByID(_ context.Context, id string) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.games[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, domain.ErrGameNotFound
}

func (r *memGameRepo) Create(_ context.Context, game *domain.Game) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *game
	clone.ID = strconv.Itoa(r.nextID)
	r.games[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memGameRepo) Update(_ context.Context, game *domain.Game) (*domain.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return nil, domain.ErrGameNotFound
	}
	clone := *game
	r.games[game.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memGameRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return domain.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *memGameRepo) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games = make(map[string]*domain.Game)
	return nil
}

func server(t *testing.T) *echo.Echo {
	t.Helper()
	buildOnce.Do(func() {
		log := zerolog.Nop()
		tokens := service.NewTokenService(jwtSecret, time.Hour)
		auth := service.NewAuthService(&memUserRepo{users: make(map[string]*domain.User)}, tokens, nil, log)
		games := service.NewGameService(&memGameRepo{games: make(map[string]*domain.Game)})

		if err := auth.Seed(context.Background(), "admin", "12345", "admin@example.com", domain.RoleAdmin); err != nil {
			t.Fatalf("seed admin: %v", err)
		}

		testServer = NewServer(Dependencies{
			Auth:   auth,
			Games:  games,
			Tokens: tokens,
			Cookie: handler.CookieSettings{
				Name:     cookieName,
				Path:     BasePath,
				HTTPOnly: true,
				SameSite: http.SameSiteStrictMode,
				TTL:      time.Hour,
			},
		}, log)
	})
	return testServer
}

func do(t *testing.T, e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo, username, password string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/v1/auth/login",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName && c.Value != "" {
			return rec, c
		}
	}
	return rec, nil
}

func TestServer_EndToEnd(t *testing.T) {
	e := server(t)

	_, adminCookie := login(t, e, "admin", "12345")
	if adminCookie == nil {
		t.Fatalf("admin login did not set the auth cookie")
	}

	t.Run("anonymous request is rejected at the gate", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/games", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("liveness bypasses the gate", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/health", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("admin registers alice", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/auth/register",
			`{"username":"alice","password":"pw1","email":"alice@example.com"}`, adminCookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
		}
		var user domain.User
		if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
			t.Fatalf("decode user: %v", err)
		}
		if user.Role != domain.RoleUser {
			t.Fatalf("role = %q, want USER", user.Role)
		}
		if strings.Contains(rec.Body.String(), "pw1") || strings.Contains(rec.Body.String(), "password_hash") {
			t.Fatalf("password material leaked: %s", rec.Body.String())
		}
	})

	t.Run("duplicate registration is a bad request", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/auth/register",
			`{"username":"alice","password":"pw9"}`, adminCookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("registration without admin role is forbidden", func(t *testing.T) {
		_, aliceCookie := login(t, e, "alice", "pw1")
		rec := do(t, e, http.MethodPost, "/api/v1/auth/register",
			`{"username":"eve","password":"pw"}`, aliceCookie)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("alice logs in and her token decodes", func(t *testing.T) {
		rec, aliceCookie := login(t, e, "alice", "pw1")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
		}
		if aliceCookie == nil {
			t.Fatalf("login did not set the auth cookie")
		}

		claims, err := service.NewTokenService(jwtSecret, time.Hour).Decode(aliceCookie.Value)
		if err != nil {
			t.Fatalf("cookie token decode: %v", err)
		}
		if claims.Subject != "alice" {
			t.Fatalf("subject = %q, want alice", claims.Subject)
		}
		if roles := claims.RoleList(); len(roles) != 1 || roles[0] != domain.RoleUser {
			t.Fatalf("roles = %v, want [USER]", roles)
		}
	})

	t.Run("user token reads the catalog but cannot write it", func(t *testing.T) {
		_, aliceCookie := login(t, e, "alice", "pw1")

		rec := do(t, e, http.MethodGet, "/api/v1/games", "", aliceCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET status = %d, want 200", rec.Code)
		}

		rec = do(t, e, http.MethodPost, "/api/v1/games", `{"name":"Doom"}`, aliceCookie)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("POST status = %d, want 403", rec.Code)
		}
	})

	t.Run("admin token covers user routes", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/games", "", adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("admin manages the catalog", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/games",
			`{"name":"Outer Wilds","release_date":"2019-05-28T00:00:00Z","developed_by":"Mobius Digital","genre":"ADVENTURE"}`, adminCookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create status = %d (%s)", rec.Code, rec.Body.String())
		}
		if loc := rec.Header().Get(echo.HeaderLocation); !strings.HasPrefix(loc, "/api/v1/games/") {
			t.Fatalf("location = %q", loc)
		}
		var game domain.Game
		_ = json.Unmarshal(rec.Body.Bytes(), &game)

		rec = do(t, e, http.MethodGet, "/api/v1/games/"+game.ID, "", adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("get status = %d", rec.Code)
		}

		rec = do(t, e, http.MethodDelete, "/api/v1/games/"+game.ID, "", adminCookie)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete status = %d", rec.Code)
		}

		rec = do(t, e, http.MethodGet, "/api/v1/games/"+game.ID, "", adminCookie)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("get after delete status = %d, want 404", rec.Code)
		}
	})

	t.Run("future release date fails validation with details", func(t *testing.T) {
		future := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
		rec := do(t, e, http.MethodPost, "/api/v1/games",
			`{"name":"Vapor","release_date":"`+future+`"}`, adminCookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "details") {
			t.Fatalf("validation details missing: %s", rec.Body.String())
		}
	})

	t.Run("wrong password yields the uniform credentials message", func(t *testing.T) {
		rec, cookie := login(t, e, "alice", "wrong")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if cookie != nil {
			t.Fatalf("failed login must not set a cookie")
		}
		if !strings.Contains(rec.Body.String(), "Invalid username or password") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})

	t.Run("unknown username is indistinguishable from wrong password", func(t *testing.T) {
		rec, _ := login(t, e, "ghost", "whatever")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid username or password") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})

	t.Run("expired token is rejected regardless of signature", func(t *testing.T) {
		stale := service.NewTokenService(jwtSecret, time.Minute)
		token, err := stale.Issue("alice", []string{domain.RoleUser}, time.Now().UTC().Add(-time.Hour))
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		rec := do(t, e, http.MethodGet, "/api/v1/games", "", &http.Cookie{Name: cookieName, Value: token})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("edit changes role without touching the password", func(t *testing.T) {
		rec := do(t, e, http.MethodPut, "/api/v1/auth/edit",
			`{"username":"alice","email":"alice@example.com","role":"USER"}`, adminCookie)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
		}
		// The old password still works.
		rec, _ = login(t, e, "alice", "pw1")
		if rec.Code != http.StatusOK {
			t.Fatalf("login after edit status = %d", rec.Code)
		}
	})

	t.Run("unmatched route is denied, not found", func(t *testing.T) {
		rec := do(t, e, http.MethodGet, "/api/v1/reports", "", adminCookie)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("delete without selectors is a bad request", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/api/v1/auth/delete", `{}`, adminCookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("admin cannot delete the admin account", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/api/v1/auth/delete", `{"username":"ADMIN"}`, adminCookie)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "your own user account") {
			t.Fatalf("body = %s", rec.Body.String())
		}
	})

	t.Run("admin deletes alice and her login stops working", func(t *testing.T) {
		rec := do(t, e, http.MethodDelete, "/api/v1/auth/delete", `{"username":"alice"}`, adminCookie)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204 (%s)", rec.Code, rec.Body.String())
		}

		rec, _ = login(t, e, "alice", "pw1")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("login after delete status = %d, want 401", rec.Code)
		}
	})

	t.Run("logout clears the cookie", func(t *testing.T) {
		rec := do(t, e, http.MethodPost, "/api/v1/auth/logout", "", adminCookie)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		cleared := false
		for _, c := range rec.Result().Cookies() {
			if c.Name == cookieName && c.Value == "" && c.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Fatalf("auth cookie not cleared")
		}
	})
}
