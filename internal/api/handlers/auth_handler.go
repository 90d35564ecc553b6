package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/api/dto"
	"github.com/Beliver-247/sliit-choir-backend/internal/api/middleware"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
	"github.com/Beliver-247/sliit-choir-backend/pkg/security/auth"
)

type AuthHandler struct {
	service member.Service
	authCfg config.AuthConfig
}

func NewAuthHandler(service member.Service, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{service: service, authCfg: authCfg}
}

// Register godoc
// @Summary Register a new member
// @Description Create a member account and send an email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate student ID or email"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.Register(c.Request.Context(), member.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		StudentID:       req.StudentID,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, MemberToResponse(m))
}

// Login godoc
// @Summary Authenticate a member
// @Description Log in with student ID and password, returning a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Email not verified or account inactive"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.Authenticate(c.Request.Context(), req.StudentID, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := auth.GenerateToken(m.ID, m.StudentID, m.Email, string(m.Role),
		h.authCfg.JWTSecret, h.authCfg.JWTIssuer, h.authCfg.JWTExpiryHours)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondOK(c, dto.AuthResponse{Token: token, Member: MemberToResponse(m)})
}

// VerifyEmail godoc
// @Summary Verify a member's email
// @Description Confirm the OTP sent to the member's email address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "Verification request"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid or expired code"
// @Router /api/auth/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.service.VerifyEmail(c.Request.Context(), req.StudentID, req.OTP)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberToResponse(m))
}

// Profile godoc
// @Summary Get the authenticated member's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	m, err := h.service.GetMember(c.Request.Context(), caller.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, MemberToResponse(m))
}
