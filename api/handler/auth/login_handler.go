package auth

import (
	"errors"
	"net/http"

	"github.com/handleme/gallery/api/common"
	"github.com/handleme/gallery/api/middleware"
	authSvc "github.com/handleme/gallery/internal/auth"
	"github.com/gin-gonic/gin"
)

// Handler serves the passwordless moderator sign-in flow.
type Handler struct {
	login *authSvc.LoginService
}

func NewHandler(login *authSvc.LoginService) *Handler {
	return &Handler{login: login}
}

type loginRequest struct {
	Email string `json:"email"`
}

// RequestLink issues a one-time sign-in link. The response is the same
// whether or not the email is recognized.
func (h *Handler) RequestLink(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		common.RespondError(c, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.login.RequestLink(c.Request.Context(), req.Email); err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to issue sign-in link")
		return
	}

	common.RespondSuccessMessage(c, "If that address is registered, a sign-in link has been sent.", nil)
}

type verifyRequest struct {
	Token string `json:"token"`
}

// Verify redeems a one-time token for a session token.
func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		common.RespondError(c, http.StatusBadRequest, "Token is required")
		return
	}

	session, err := h.login.Redeem(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, authSvc.ErrInvalidLoginToken) {
			common.RespondError(c, http.StatusUnauthorized, "Invalid or expired sign-in token")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to verify sign-in token")
		return
	}

	common.RespondSuccess(c, gin.H{"token": session})
}

// Session reports the signed-in email; mounted behind the session
// middleware.
func (h *Handler) Session(c *gin.Context) {
	common.RespondSuccess(c, gin.H{
		"email": c.GetString(middleware.ContextEmailKey),
	})
}

// Logout acknowledges sign-out. Sessions are stateless JWTs; the client
// discards its token.
func (h *Handler) Logout(c *gin.Context) {
	common.RespondSuccessMessage(c, "Signed out", nil)
}
