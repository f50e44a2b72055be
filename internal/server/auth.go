package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smartsellhq/smartsell/internal/auth/domain"
)

const sessionMaxAge = 30 * 24 * 60 * 60

func (s *Server) sessionMeta(c *gin.Context) authdomain.SessionMeta {
	return authdomain.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	}
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", s.cfg.AuthCookieSecure, true)
}

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Meta = s.sessionMeta(c)

	result, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.setSessionCookie(c, result.Session.Token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{"data": result.User})
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Meta = s.sessionMeta(c)

	result, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.setSessionCookie(c, result.Session.Token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{"data": result.User})
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// LoginWithGoogle takes the raw ID token from the client-side sign-in
// flow. The identity claims are fetched from the provider server-side,
// never read from the request body.
func (s *Server) LoginWithGoogle(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authSvc.LoginWithGoogle(c.Request.Context(), req.IDToken, s.sessionMeta(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.setSessionCookie(c, result.Session.Token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{"data": result.User})
}

func (s *Server) Logout(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err == nil && token != "" {
		if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *Server) ChangePassword(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req authdomain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authSvc.ChangePassword(c.Request.Context(), user.ID, req); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
