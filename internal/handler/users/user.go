package users

import (
	"net/http"

	"todo-app/internal/api"
	"todo-app/internal/database"
	"todo-app/internal/middleware"
	"todo-app/internal/service"
	"todo-app/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword          = service.HashPassword
	authenticateUser      = service.AuthenticateUser
	getUserByID           = store.GetUserByID
	updateUserPassword    = store.UpdateUserPassword
	updateUserPhoneNumber = store.UpdateUserPhoneNumber
)

func claimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims.UserID != 0
}

// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊，不包含密碼哈希
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/current_user [get]
func GetCurrentUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Could not find user"})
		}

		return c.JSON(http.StatusOK, api.UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			PhoneNumber: user.PhoneNumber,
			Role:        user.Role,
			IsActive:    user.IsActive,
		})
	}
}

// @Summary     Change own password
// @Description 驗證當前密碼並更新為新密碼；原始行為在驗證失敗時回 404
// @Tags        users
// @Accept      json
// @Param       passwords body api.ChangePasswordRequest true "當前與新密碼"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/change_password [put]
func ChangePasswordHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		var req api.ChangePasswordRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Could not find user"})
		}

		if err := authenticateUser(c.Request().Context(), *user, req.CurrentPassword); err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Could not validate current password"})
		}

		hash, err := hashPassword(req.NewPassword)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash new password"})
		}

		if err := updateUserPassword(c.Request().Context(), db, claims.UserID, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Update own phone number
// @Description 更新當前使用者的電話號碼
// @Tags        users
// @Accept      json
// @Param       phone body api.UpdatePhoneNumberRequest true "新電話號碼"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/update_phone_number [put]
func UpdatePhoneNumberHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := claimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Could not Authenticate"})
		}

		var req api.UpdatePhoneNumberRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if err := updateUserPhoneNumber(c.Request().Context(), db, claims.UserID, req.NewPhoneNumber); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.NoContent(http.StatusNoContent)
	}
}
