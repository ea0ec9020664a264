package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/gig-marketplace-api/internal/constants"
	"github.com/yukikurage/gig-marketplace-api/internal/notify"
	"github.com/yukikurage/gig-marketplace-api/internal/repository"
	"github.com/yukikurage/gig-marketplace-api/internal/services"
	"github.com/yukikurage/gig-marketplace-api/internal/testutil"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	registry    *notify.Registry
	authService *services.AuthService
	handlers    Handlers
}

func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()

	db := testutil.NewDB(t)
	registry := notify.NewRegistry(constants.SubscriberBuffer)

	userRepo := repository.NewUserRepository(db)
	gigRepo := repository.NewGigRepository(db)
	bidRepo := repository.NewBidRepository(db)
	hireRepo := repository.NewHireRepository(db)

	authService := services.NewAuthService(userRepo)
	gigService := services.NewGigService(gigRepo)
	bidService := services.NewBidService(bidRepo, gigRepo)
	hireService := services.NewHireService(bidRepo, gigRepo, hireRepo, notify.NewLocalNotifier(registry, nil), nil, nil)

	h := Handlers{
		Auth:   NewAuthHandler(authService),
		Gig:    NewGigHandler(gigService),
		Bid:    NewBidHandler(bidService, hireService),
		Events: NewEventHandler(registry),
	}

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, h, gigRepo)

	return apiTestEnv{
		db:          db,
		router:      r,
		registry:    registry,
		authService: authService,
		handlers:    h,
	}
}

// request performs a JSON request against the router with the given session
// cookies.
func (env apiTestEnv) request(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signIn registers a user named name and returns its ID and session cookies.
func (env apiTestEnv) signIn(t *testing.T, name string) (uint64, []*http.Cookie) {
	t.Helper()

	email := name + "@example.com"
	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return user.ID, cookies
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
