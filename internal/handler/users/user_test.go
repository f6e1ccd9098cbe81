package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo-app/internal/api"
	"todo-app/internal/database"
	"todo-app/internal/middleware"
	"todo-app/internal/model"
	"todo-app/internal/service"
	"todo-app/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	getUserByID = store.GetUserByID
	updateUserPassword = store.UpdateUserPassword
	updateUserPhoneNumber = store.UpdateUserPhoneNumber
}

func newCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/users/current_user", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withClaims(c echo.Context, userID int) {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{
		UserID:           userID,
		Role:             "user",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ws"},
	})
}

func TestGetCurrentUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("missing claims", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(e, http.MethodGet, "")
		require.NoError(t, GetCurrentUserHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user missing", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("no rows")
		}
		ctx, rec := newCtx(e, http.MethodGet, "")
		withClaims(ctx, 1)
		require.NoError(t, GetCurrentUserHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Could not find user", resp.Message)
	})

	t.Run("success omits password hash", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
			require.Equal(t, 1, id)
			return &model.User{
				ID:             1,
				Username:       "ws",
				Email:          "ws@email.com",
				FirstName:      "Will",
				LastName:       "Swinson",
				HashedPassword: "secret-hash",
				PhoneNumber:    "912-232-1121",
				Role:           "user",
				IsActive:       true,
			}, nil
		}
		ctx, rec := newCtx(e, http.MethodGet, "")
		withClaims(ctx, 1)
		require.NoError(t, GetCurrentUserHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "secret-hash")

		var resp api.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ws", resp.Username)
		require.True(t, resp.IsActive)
	})
}

func TestChangePasswordHandler(t *testing.T) {
	e := echo.New()
	body := `{"current_password":"old","new_password":"new"}`

	t.Run("validation error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("required")}
		ctx, rec := newCtx(e, http.MethodPut, body)
		withClaims(ctx, 1)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("user missing", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, errors.New("no rows")
		}
		ctx, rec := newCtx(e, http.MethodPut, body)
		withClaims(ctx, 1)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Could not find user", resp.Message)
	})

	t.Run("wrong current password leaves hash untouched", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 1, Username: "ws", HashedPassword: "hash"}, nil
		}
		authenticateUser = func(_ context.Context, _ model.User, pw string) error {
			require.Equal(t, "old", pw)
			return errors.New("invalid password")
		}
		updated := false
		updateUserPassword = func(context.Context, database.DB, int, string) error {
			updated = true
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPut, body)
		withClaims(ctx, 1)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.False(t, updated)
		var resp api.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Could not validate current password", resp.Message)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return &model.User{ID: 1, Username: "ws", HashedPassword: "hash"}, nil
		}
		authenticateUser = func(context.Context, model.User, string) error { return nil }
		hashPassword = func(pw string) (string, error) {
			require.Equal(t, "new", pw)
			return "new-hash", nil
		}
		updateUserPassword = func(_ context.Context, _ database.DB, id int, hash string) error {
			require.Equal(t, 1, id)
			require.Equal(t, "new-hash", hash)
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPut, body)
		withClaims(ctx, 1)
		require.NoError(t, ChangePasswordHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestUpdatePhoneNumberHandler(t *testing.T) {
	e := echo.New()
	body := `{"new_phone_number":"423-433-1212"}`

	t.Run("missing claims", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newCtx(e, http.MethodPut, body)
		require.NoError(t, UpdatePhoneNumberHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateUserPhoneNumber = func(context.Context, database.DB, int, string) error {
			return errors.New("boom")
		}
		ctx, rec := newCtx(e, http.MethodPut, body)
		withClaims(ctx, 1)
		require.NoError(t, UpdatePhoneNumberHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		updateUserPhoneNumber = func(_ context.Context, _ database.DB, id int, phone string) error {
			require.Equal(t, 1, id)
			require.Equal(t, "423-433-1212", phone)
			return nil
		}
		ctx, rec := newCtx(e, http.MethodPut, body)
		withClaims(ctx, 1)
		require.NoError(t, UpdatePhoneNumberHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
