package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/internal/service/auth"
)

// AuthService is implemented by service/auth.
type AuthService interface {
	Register(ctx context.Context, in auth.Registration) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateMe(ctx context.Context, userID primitive.ObjectID, in auth.ProfileUpdate) (*models.User, string, error)
}

type AuthHandler struct {
	svc    AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	Name        string `json:"name" binding:"trimmin=2" msg:"Name is required"`
	Email       string `json:"email" binding:"required,email" msg:"A valid email is required"`
	Password    string `json:"password" binding:"min=6,max=72" msg:"Password must be at least 6 characters" msg_max:"Password must be at most 72 characters"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required" msg:"Invalid email or password"`
	Password string `json:"password" binding:"required" msg:"Invalid email or password"`
}

type updateMeRequest struct {
	Name               *string `json:"name"`
	PhoneNumber        *string `json:"phoneNumber"`
	LanguagePreference *string `json:"languagePreference"`
	CurrentPassword    string  `json:"currentPassword"`
	NewPassword        string  `json:"newPassword" binding:"omitempty,min=6,max=72" msg:"Password must be at least 6 characters" msg_max:"Password must be at most 72 characters"`
}

// SessionResponse is returned by register and login.
type SessionResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type updateMeResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func sessionResponse(s *auth.Session) SessionResponse {
	return SessionResponse{ID: s.User.ID.Hex(), Name: s.User.Name, Email: s.User.Email, Token: s.Token}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	session, err := h.svc.Register(c.Request.Context(), auth.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	session, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), owner(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}
	user, message, err := h.svc.UpdateMe(c.Request.Context(), owner(c), auth.ProfileUpdate{
		Name:               req.Name,
		PhoneNumber:        req.PhoneNumber,
		LanguagePreference: req.LanguagePreference,
		CurrentPassword:    req.CurrentPassword,
		NewPassword:        req.NewPassword,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updateMeResponse{Message: message, User: user})
}
