package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecofinds/internal/domain"
	"ecofinds/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.svc.Users.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.RecordRegistration()
	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, err := h.svc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, userToResponse(*currentUser(c)))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.svc.Users.UpdateProfile(c.Request.Context(), currentUser(c).ID, domain.UserPatch{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}
