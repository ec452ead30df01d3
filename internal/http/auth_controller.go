package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/audit"
	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/services"
)

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Name        string `json:"name"`
}

type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// AuthController handles login and self-registration.
type AuthController struct {
	auth         *auth.Service
	registration *services.RegistrationService
	audit        *audit.Service
}

func NewAuthController(authService *auth.Service, registration *services.RegistrationService, auditService *audit.Service) *AuthController {
	return &AuthController{
		auth:         authService,
		registration: registration,
		audit:        auditService,
	}
}

// Login exchanges form-encoded credentials for a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		respondBadRequest(c, "username and password are required")
		return
	}

	identity, err := ac.auth.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			ac.audit.LogAuth(username, c.ClientIP(), false)
			respondUnauthorized(c, err.Error())
			return
		}
		respondInternalError(c, err, "login")
		return
	}

	token, err := ac.auth.IssueToken(c.Request.Context(), identity)
	if err != nil {
		respondInternalError(c, err, "issue token")
		return
	}
	ac.audit.LogAuth(identity.Username, c.ClientIP(), true)

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Username:    identity.Username,
		Role:        string(identity.Role),
		Name:        identity.Name,
	})
}

// Register creates a reader account.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ac.registration.Register(services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	handle := ""
	if user != nil {
		handle = user.Handle
	}
	ac.audit.LogRegister(handle, req.Email, c.ClientIP(), err)
	if err != nil {
		respondServiceError(c, err, "register")
		return
	}

	respondCreated(c, RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.Handle,
	})
}
