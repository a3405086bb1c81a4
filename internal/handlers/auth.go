package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drushti-surkar/hashgait-demo/internal/repository"
	"github.com/drushti-surkar/hashgait-demo/internal/utils"
)

// AuthHandler serves registration, login and logout. Password login is the
// first factor; behavioral verification through the pattern routes is the
// second.
type AuthHandler struct {
	log   *zap.Logger
	users repository.Users
}

func NewAuthHandler(log *zap.Logger, users repository.Users) *AuthHandler {
	return &AuthHandler{log: log, users: users}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if !utils.IsValidUsername(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username must be 3-32 letters, digits, underscores or hyphens"})
		return
	}
	if !utils.IsComplexPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters with upper, lower, digit and special characters"})
		return
	}

	user, err := h.users.Create(c, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		h.log.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	h.log.Info("User registered", zap.String("username", user.Username))
	c.JSON(http.StatusCreated, gin.H{"success": true, "username": user.Username})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.users.GetByUsername(c, req.Username)
	if err != nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	session := sessions.Default(c)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	h.log.Info("User logged in", zap.String("username", user.Username))
	c.JSON(http.StatusOK, gin.H{"success": true, "username": user.Username})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
