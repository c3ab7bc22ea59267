package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/middleware"
	"hotel-api/services"
	"hotel-api/utils"
)

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	Auth *services.AuthService
	Log  *zap.Logger
}

func NewAuthController(auth *services.AuthService, log *zap.Logger) *AuthController {
	return &AuthController{Auth: auth, Log: log}
}

// Register (POST /api/auth/register)
func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := bindJSONBody(c, &payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "message", err.Error())
		return
	}

	user, token, err := ctrl.Auth.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login (POST /api/auth/login)
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := bindJSONBody(c, &payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "message", err.Error())
		return
	}

	user, token, err := ctrl.Auth.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me (GET /api/auth/me) echoes the caller identity.
func (ctrl *AuthController) Me(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "message", "Not authorized")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "user", id)
}

func (ctrl *AuthController) fail(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "message", err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusUnauthorized, "message", "Invalid email or password")
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "message", "User already exists")
	default:
		ctrl.Log.Error("auth failure", zap.Error(err), zap.String("request_id", middleware.GetRequestID(c)))
		utils.JSONError(c, http.StatusInternalServerError, "message", "Server error")
	}
}
