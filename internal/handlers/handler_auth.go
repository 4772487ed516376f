package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vkravets/contacts_api/internal/apperrors"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/dto"
	"github.com/vkravets/contacts_api/internal/middleware"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade) *AuthHandler {
	return &AuthHandler{
		userService:  us,
		tokenService: ts,
	}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.User, services.Token)

	// Login is the brute-forceable endpoint: 5 attempts per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.Login)
		auth.GET("/refresh", h.Refresh)
		auth.GET("/confirm/:token", h.ConfirmEmail)
		auth.POST("/request-confirmation", h.RequestConfirmation)
	}
}

// Register godoc
// @Summary Register new user
// @Description Creates a new unconfirmed user account and emails a confirmation link.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email already in use"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	newUser, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUsernameExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Account already exists"})
		case errors.Is(err, apperrors.ErrEmailExists):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already in use"})
		default:
			logger.Error("Failed to register user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		User:   dto.ToUserResponse(newUser),
		Detail: "User successfully created",
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns an access/refresh token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	pair, err := h.tokenService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		case errors.Is(err, apperrors.ErrEmailNotConfirmed):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Email not confirmed"})
		default:
			logger.Error("Failed to authenticate user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log in"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

// Refresh godoc
// @Summary Rotate refresh token
// @Description Exchanges a valid refresh token (bearer) for a new access/refresh pair.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} ErrorResponse "Invalid, reused or wrong-scope token"
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh [get]
func (h *AuthHandler) Refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be Bearer {token}"})
		return
	}

	pair, err := h.tokenService.RotateRefreshToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTokenReuseDetected):
			logger.Warn("Refresh token reuse detected; stored token revoked")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
		case errors.Is(err, apperrors.ErrInvalidScope):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid scope for token"})
		case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Could not validate credentials"})
		default:
			logger.Error("Failed to rotate refresh token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	})
}

// ConfirmEmail godoc
// @Summary Confirm email address
// @Description Confirms a user's email address via the emailed token link.
// @Tags auth
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Malformed confirmation token"
// @Router /auth/confirm/{token} [get]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	alreadyConfirmed, err := h.userService.ConfirmEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnprocessableToken):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Invalid token for email verification"})
		case errors.Is(err, apperrors.ErrInvalidScope):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid scope for token"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Verification error"})
		default:
			logger.Error("Failed to confirm email", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to confirm email"})
		}
		return
	}

	if alreadyConfirmed {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Your email is already confirmed"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email confirmed"})
}

// RequestConfirmation godoc
// @Summary Re-send confirmation email
// @Description Sends another confirmation email for an unconfirmed account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestEmailRequest true "Account email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/request-confirmation [post]
func (h *AuthHandler) RequestConfirmation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RequestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	alreadyConfirmed, err := h.userService.RequestConfirmationEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Don't reveal whether the address exists.
			c.JSON(http.StatusOK, dto.MessageResponse{Message: "Check your email for confirmation."})
			return
		}
		logger.Error("Failed to re-send confirmation email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send confirmation email"})
		return
	}

	if alreadyConfirmed {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Your email is already confirmed"})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Check your email for confirmation."})
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
