package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dukkanlabs/dukkan-erp/internal/adapter/api/dto"
	userdomain "github.com/dukkanlabs/dukkan-erp/internal/domain/user"
	"github.com/dukkanlabs/dukkan-erp/pkg/auth"
	"github.com/dukkanlabs/dukkan-erp/pkg/logger"
	"github.com/gin-gonic/gin"
)

// AuthController handles authentication and user management requests
type AuthController struct {
	userRepo   userdomain.Repository
	jwtService *auth.JWTService
	logger     logger.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(userRepo userdomain.Repository, jwtService *auth.JWTService, logger logger.Logger) *AuthController {
	return &AuthController{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user and issues an access token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "invalid credentials", ""))
			return
		}
		c.logger.Error("failed to find user", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to authenticate", err.Error()))
		return
	}

	if !u.IsActive() || !u.CheckPassword(req.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "invalid credentials", ""))
		return
	}

	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("failed to generate token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to generate token", err.Error()))
		return
	}

	u.TouchLogin()
	if err := c.userRepo.Update(ctx, u); err != nil {
		c.logger.Warn("failed to record login time", "error", err)
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(c.jwtService.Expiration()),
		User:      *dto.ToUserResponse(u),
	})
}

// Register creates a new user account. Admin only.
// @Summary Register user
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user body dto.RegisterUserRequest true "User data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	u, err := userdomain.NewUser(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to create user", err.Error()))
		return
	}

	if err := c.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, userdomain.ErrDuplicateEmail) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "email already in use", ""))
			return
		}
		c.logger.Error("failed to create user", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to create user", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetInt64(auth.ContextUserID)

	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "user no longer exists", ""))
			return
		}
		c.logger.Error("failed to find user", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to find user", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// ChangePassword replaces the authenticated user's password
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid request body", err.Error()))
		return
	}

	userID := ctx.GetInt64(auth.ContextUserID)
	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "user no longer exists", ""))
		return
	}

	if !u.CheckPassword(req.CurrentPassword) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "current password is incorrect", ""))
		return
	}

	if err := u.SetPassword(req.NewPassword); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "failed to change password", err.Error()))
		return
	}

	if err := c.userRepo.Update(ctx, u); err != nil {
		c.logger.Error("failed to update user", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to change password", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("password changed", nil))
}

// ListUsers lists user accounts. Admin only.
// @Summary List users
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.UserListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /auth/users [get]
func (c *AuthController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	users, err := c.userRepo.List(ctx, pagination.Size, pagination.Offset())
	if err != nil {
		c.logger.Error("failed to list users", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to list users", err.Error()))
		return
	}

	items := make([]dto.UserResponse, len(users))
	for i, u := range users {
		items[i] = *dto.ToUserResponse(u)
	}
	ctx.JSON(http.StatusOK, dto.UserListResponse{Items: items})
}

// DeleteUser removes a user account. Admin only.
// @Summary Delete user
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/users/{id} [delete]
func (c *AuthController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "invalid user id", err.Error()))
		return
	}

	if id == ctx.GetInt64(auth.ContextUserID) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "cannot delete the current user", ""))
		return
	}

	if err := c.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "user not found", ""))
			return
		}
		c.logger.Error("failed to delete user", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "failed to delete user", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("user deleted", nil))
}
