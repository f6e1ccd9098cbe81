package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"todo-app/internal/api"
	"todo-app/internal/cache"
	"todo-app/internal/database"
	"todo-app/internal/model"
	"todo-app/internal/service"
	"todo-app/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newFormCtx(e *echo.Echo, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	createUser = store.CreateUser
	getUserByUsername = store.GetUserByUsername
}

func newTestAuth() *service.Auth {
	return service.NewAuth("testsecret", 20*time.Minute, time.Hour)
}

const registerBody = `{"username":"ws","email":"ws@email.com","first_name":"Will","last_name":"Swinson","password":"pw","phone_number":"912-232-1121","role":"user"}`

func TestRegisterHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, "{not json")
		require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("missing field")}
		ctx, rec := newJSONCtx(e, registerBody)
		require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("hash failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		hashPassword = func(string) (string, error) { return "", errors.New("boom") }
		ctx, rec := newJSONCtx(e, registerBody)
		require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "User not created", resp.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		hashPassword = func(string) (string, error) { return "hashed", nil }
		createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
			return nil, errors.New("duplicate username")
		}
		ctx, rec := newJSONCtx(e, registerBody)
		require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "User not created", resp.Message)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		hashPassword = func(pw string) (string, error) {
			require.Equal(t, "pw", pw)
			return "hashed", nil
		}
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			require.Equal(t, "ws", u.Username)
			require.Equal(t, "hashed", u.HashedPassword)
			require.True(t, u.IsActive)
			u.ID = 1
			return u, nil
		}
		ctx, rec := newJSONCtx(e, registerBody)
		require.NoError(t, RegisterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Empty(t, rec.Body.String())
	})
}

func TestTokenHandler(t *testing.T) {
	e := echo.New()
	auth := newTestAuth()
	form := url.Values{"username": {"ws"}, "password": {"pw"}}

	t.Run("validation error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("required")}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{}, auth)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByUsername = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, errors.New("no rows")
		}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{}, auth)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Could not Authenticate", resp.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByUsername = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, Username: "ws"}, nil
		}
		authenticateUser = func(context.Context, model.User, string) error {
			return errors.New("invalid password")
		}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, TokenHandler(&database.FakeDB{}, &cache.FakeCache{}, auth)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Could not Authenticate", resp.Message)
	})

	t.Run("refresh token storage failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByUsername = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, Username: "ws", Role: "user"}, nil
		}
		authenticateUser = func(context.Context, model.User, string) error { return nil }
		rdb := &cache.FakeCache{
			SetFn: func(context.Context, string, any, time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("redis down"))
			},
		}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, TokenHandler(&database.FakeDB{}, rdb, auth)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByUsername = func(_ context.Context, _ database.DB, username string) (*model.User, error) {
			require.Equal(t, "ws", username)
			return &model.User{ID: 7, Username: "ws", Role: "admin"}, nil
		}
		authenticateUser = func(_ context.Context, u model.User, pw string) error {
			require.Equal(t, "pw", pw)
			return nil
		}
		var storedKey string
		rdb := &cache.FakeCache{
			SetFn: func(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
				storedKey = key
				require.Equal(t, time.Hour, ttl)
				return redis.NewStatusResult("OK", nil)
			},
		}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, TokenHandler(&database.FakeDB{}, rdb, auth)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "bearer", resp.Type)
		require.NotEmpty(t, resp.AccessToken)
		require.NotEmpty(t, resp.RefreshToken)
		require.Equal(t, "refresh_token:"+resp.RefreshToken, storedKey)

		claims, err := auth.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, 7, claims.UserID)
		require.Equal(t, "ws", claims.Subject)
		require.True(t, claims.IsAdmin())
	})
}

func TestRefreshHandler(t *testing.T) {
	e := echo.New()
	auth := newTestAuth()
	form := url.Values{"refresh_token": {"tok"}}

	t.Run("invalid refresh token", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		rdb := &cache.FakeCache{
			GetFn: func(context.Context, string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
		}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, RefreshHandler(rdb, auth)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Could not Authenticate", resp.Message)
	})

	t.Run("success keeps refresh token", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		rdb := &cache.FakeCache{
			GetFn: func(_ context.Context, key string) *redis.StringCmd {
				require.Equal(t, "refresh_token:tok", key)
				return redis.NewStringResult(`{"user_id":5,"username":"ws","role":"user"}`, nil)
			},
		}
		ctx, rec := newFormCtx(e, form)
		require.NoError(t, RefreshHandler(rdb, auth)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "bearer", resp.Type)
		require.Equal(t, "tok", resp.RefreshToken)

		claims, err := auth.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, 5, claims.UserID)
		require.Equal(t, "ws", claims.Subject)
		require.False(t, claims.IsAdmin())
	})
}
