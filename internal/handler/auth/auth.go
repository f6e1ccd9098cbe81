package auth

import (
	"net/http"

	"todo-app/internal/api"
	"todo-app/internal/cache"
	"todo-app/internal/database"
	"todo-app/internal/model"
	"todo-app/internal/service"
	"todo-app/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword      = service.HashPassword
	authenticateUser  = service.AuthenticateUser
	createUser        = store.CreateUser
	getUserByUsername = store.GetUserByUsername
)

// @Summary     Register a new user
// @Description 接收使用者 JSON 資料並建立新帳號，密碼以 bcrypt 哈希後存放
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       user body api.CreateUserRequest true "使用者資料"
// @Success     201
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Router      /auth [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not created"})
		}

		if _, err := createUser(c.Request().Context(), db, &model.User{
			Username:       req.Username,
			Email:          req.Email,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			HashedPassword: hash,
			PhoneNumber:    req.PhoneNumber,
			Role:           req.Role,
			IsActive:       true,
		}); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not created"})
		}

		return c.NoContent(http.StatusCreated)
	}
}

// @Summary     Obtain an access token
// @Description 使用 Username 與 Password 進行驗證，回傳存取令牌與 refresh token
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true "使用者名稱"
// @Param       password formData string true "使用者密碼"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/token [post]
func TokenHandler(db database.DB, rdb cache.Cache, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var req api.TokenRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByUsername(ctx, db, req.Username)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}
		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		token, err := auth.IssueAccessToken(*user, auth.AccessTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		refreshToken, err := auth.IssueRefreshToken(ctx, rdb, *user, auth.RefreshTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue refresh token"})
		}

		return c.JSON(http.StatusOK, api.TokenResponse{
			AccessToken:  token,
			Type:         "bearer",
			RefreshToken: refreshToken,
		})
	}
}

// @Summary     Exchange a refresh token
// @Description 以 refresh token 換發新的存取令牌，refresh token 沿用原值
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       refresh_token formData string true "Refresh token"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/refresh [post]
func RefreshHandler(rdb cache.Cache, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		var req api.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		data, err := auth.ValidateRefreshToken(ctx, rdb, req.RefreshToken)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		token, err := auth.IssueAccessToken(model.User{
			ID:       data.UserID,
			Username: data.Username,
			Role:     data.Role,
		}, auth.AccessTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.TokenResponse{
			AccessToken:  token,
			Type:         "bearer",
			RefreshToken: req.RefreshToken,
		})
	}
}
