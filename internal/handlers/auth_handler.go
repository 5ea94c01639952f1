package handlers

import (
	"net/http"
	"pos_system/internal/models"
	"pos_system/internal/redis"
	"pos_system/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
	sessions    *redis.Client
	cookieName  string
	cookieTTL   int
}

func NewAuthHandler(userService services.UserService, sessions *redis.Client, cookieName string, cookieTTL int) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		cookieName:  cookieName,
		cookieTTL:   cookieTTL,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.sessions.CreateSession(user)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary failure, please retry"})
		return
	}

	c.SetCookie(h.cookieName, token, h.cookieTTL, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err == nil {
		h.sessions.DeleteSession(token)
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Register creates a staff account. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Role == "" {
		req.Role = string(models.RoleCashier)
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.Password, models.UserRole(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// ListUsers returns all staff accounts. Admin only.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
