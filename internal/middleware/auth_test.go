package middleware_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/middleware"
)

// --- Stub TokenService ---
// Only ResolveCurrentUser matters to the middleware; everything else is inert.
type stubTokenService struct {
	ResolveCurrentUserFn func(ctx context.Context, accessToken string) (*domain.User, error)
}

func (s *stubTokenService) IssueAccessToken(string) (string, error)       { return "", nil }
func (s *stubTokenService) IssueRefreshToken(string) (string, error)      { return "", nil }
func (s *stubTokenService) IssueConfirmationToken(string) (string, error) { return "", nil }
func (s *stubTokenService) VerifyAccessToken(string) (string, error)      { return "", nil }
func (s *stubTokenService) VerifyRefreshToken(string) (string, error)     { return "", nil }
func (s *stubTokenService) VerifyConfirmationToken(string) (string, error) {
	return "", nil
}

func (s *stubTokenService) ResolveCurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	return s.ResolveCurrentUserFn(ctx, accessToken)
}

func (s *stubTokenService) RotateRefreshToken(context.Context, string) (*domain.TokenPair, error) {
	return nil, nil
}

func (s *stubTokenService) Authenticate(context.Context, string, string) (*domain.TokenPair, error) {
	return nil, nil
}

var _ portssvc.TokenSvcFacade = (*stubTokenService)(nil)

func protectedRouter(tokenSvc portssvc.TokenSvcFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(tokenSvc), func(c *gin.Context) {
		user, ok := middleware.GetCurrentUserFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return r
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := protectedRouter(&stubTokenService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header required", errorBody(t, w))
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	r := protectedRouter(&stubTokenService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header format must be Bearer {token}", errorBody(t, w))
}

// Every resolution failure gets the same generic message, whatever the cause: an
// expired token, a bad signature or a wrong-scope token all look alike to the caller.
func TestAuthMiddleware_ResolutionFailuresAreUniform(t *testing.T) {
	causes := map[string]error{
		"expired":     fmt.Errorf("%w: token is expired", apperrors.ErrInvalidCredentials),
		"wrong scope": fmt.Errorf("%w: token scope is %q", apperrors.ErrInvalidCredentials, domain.ScopeRefresh),
		"user gone":   fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthenticated),
	}

	for name, cause := range causes {
		t.Run(name, func(t *testing.T) {
			stub := &stubTokenService{
				ResolveCurrentUserFn: func(ctx context.Context, accessToken string) (*domain.User, error) {
					return nil, cause
				},
			}
			r := protectedRouter(stub)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer some-token")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Could not validate credentials", errorBody(t, w))
		})
	}
}

func TestAuthMiddleware_ResolvedUserInContext(t *testing.T) {
	user := &domain.User{UserID: uuid.NewString(), Username: "alice", Confirmed: true}
	stub := &stubTokenService{
		ResolveCurrentUserFn: func(ctx context.Context, accessToken string) (*domain.User, error) {
			assert.Equal(t, "valid-token", accessToken)
			return user, nil
		},
	}
	r := protectedRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
}
