package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// writeAuthError uses the {"error": ...} body the auth endpoints are known by.
func writeAuthError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	c.JSON(status, gin.H{"error": utils.Message(err, http.StatusText(status))})
}

type loginBody struct {
	Login            string `json:"login"`
	Email            string `json:"email"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Subdomain        string `json:"subdomain"`
	CollegeSubdomain string `json:"collegeSubdomain"`
}

func (b loginBody) login() string {
	if b.Login != "" {
		return b.Login
	}
	if b.Email != "" {
		return b.Email
	}
	return b.Username
}

func (b loginBody) subdomain() string {
	if b.Subdomain != "" {
		return b.Subdomain
	}
	return b.CollegeSubdomain
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeAuthError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), services.LoginRequest{
		Login:     body.login(),
		Password:  body.Password,
		Subdomain: body.subdomain(),
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  res.AccessToken,
		"refreshToken": res.RefreshToken,
		"user":         res.User,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeAuthError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Refresh", "invalid request body", err))
		return
	}

	access, err := h.svc.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// Logout clears the session matching the presented refresh token. It answers
// 204 whether or not a session matched.
func (h *AuthHandler) Logout(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.svc.Logout(c.Request.Context(), body.RefreshToken); err != nil {
		writeAuthError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var body struct {
		Login            string `json:"login"`
		RollNumber       string `json:"rollNumber"`
		Email            string `json:"email"`
		Username         string `json:"username"`
		Subdomain        string `json:"subdomain"`
		CollegeSubdomain string `json:"collegeSubdomain"`
		DOB              string `json:"dob"`
		NewPassword      string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeAuthError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.RecoverPassword", "invalid request body", err))
		return
	}

	login := body.Login
	for _, alt := range []string{body.RollNumber, body.Email, body.Username} {
		if login == "" {
			login = alt
		}
	}
	subdomain := body.Subdomain
	if subdomain == "" {
		subdomain = body.CollegeSubdomain
	}

	err := h.svc.RecoverPassword(c.Request.Context(), services.RecoverPasswordRequest{
		Login:       login,
		Subdomain:   subdomain,
		DOB:         body.DOB,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password updated."})
}
