package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/youthcare-backend/internal/http/response"
	"github.com/yungbote/youthcare-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandler(authService services.AuthService, userService services.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// POST /auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		FirstName   string     `json:"first_name"`
		LastName    string     `json:"last_name"`
		Email       string     `json:"email"`
		Password    string     `json:"password"`
		Role        string     `json:"role"`
		DateOfBirth *time.Time `json:"date_of_birth"`
		PhoneNumber string     `json:"phone_number"`
		Location    string     `json:"location"`
	}
	if !bindJSON(c, &req) {
		return
	}
	session, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, session)
}

// POST /auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	session, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, session)
}

// POST /auth/refresh-token
// body: { "refresh_token": "..." }
func (ah *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !bindJSON(c, &req) {
		return
	}
	session, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, session)
}

// POST /auth/logout
func (ah *AuthHandler) Logout(c *gin.Context) {
	if err := ah.authService.Logout(c.Request.Context()); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	profile, err := ah.userService.Profile(dbcFrom(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, profile)
}

// POST /auth/forgot-password
func (ah *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := ah.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	// Same answer whether or not the address is registered.
	payload := gin.H{"message": "If that email is registered, a reset link has been sent."}
	if res != nil && res.ResetURL != "" {
		payload["reset_url"] = res.ResetURL
	}
	response.RespondOK(c, payload)
}

// POST /auth/reset-password
func (ah *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := ah.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
