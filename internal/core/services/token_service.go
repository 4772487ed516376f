package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/platform/cache"
	"github.com/vkravets/contacts_api/internal/platform/config"
	"github.com/vkravets/contacts_api/internal/utils"
)

// tokenService implements TokenSvcFacade. It owns the signing configuration and
// mediates between the user repository (authoritative) and the identity cache
// (read-through, TTL-expired) when resolving bearer tokens.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepository
	cache    cache.UserCache
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepository, userCache cache.UserCache) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
		cache:    userCache,
	}
}

func (s *tokenService) IssueAccessToken(username string) (string, error) {
	return utils.GenerateScopedJWT(username, domain.ScopeAccess, s.cfg.JWTSecret, s.cfg.AccessTokenExpiry, s.cfg.JWTIssuer)
}

func (s *tokenService) IssueRefreshToken(username string) (string, error) {
	return utils.GenerateScopedJWT(username, domain.ScopeRefresh, s.cfg.JWTSecret, s.cfg.RefreshTokenExpiry, s.cfg.JWTIssuer)
}

func (s *tokenService) IssueConfirmationToken(email string) (string, error) {
	return utils.GenerateScopedJWT(email, domain.ScopeEmail, s.cfg.JWTSecret, s.cfg.EmailTokenExpiry, s.cfg.JWTIssuer)
}

// VerifyAccessToken returns the subject username of a valid access token. Any
// verification failure, including a wrong scope, collapses into ErrInvalidCredentials:
// callers of protected endpoints get one uniform rejection.
func (s *tokenService) VerifyAccessToken(tokenString string) (string, error) {
	claims, err := utils.ParseScopedJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, err)
	}
	if claims.Scope != domain.ScopeAccess {
		return "", fmt.Errorf("%w: token scope is %q", apperrors.ErrInvalidCredentials, claims.Scope)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token subject is empty", apperrors.ErrInvalidCredentials)
	}
	return claims.Subject, nil
}

// VerifyRefreshToken returns the subject username of a valid refresh token. A wrong
// scope is reported distinctly so handlers can tell a misused token from a bad one.
func (s *tokenService) VerifyRefreshToken(tokenString string) (string, error) {
	claims, err := utils.ParseScopedJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrInvalidCredentials, err)
	}
	if claims.Scope != domain.ScopeRefresh {
		return "", fmt.Errorf("%w: expected refresh scope, got %q", apperrors.ErrInvalidScope, claims.Scope)
	}
	return claims.Subject, nil
}

// VerifyConfirmationToken returns the subject email of a valid confirmation token.
// Format/signature problems map to ErrUnprocessableToken (422 at the HTTP layer).
func (s *tokenService) VerifyConfirmationToken(tokenString string) (string, error) {
	claims, err := utils.ParseScopedJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrUnprocessableToken, err)
	}
	if claims.Scope != domain.ScopeEmail {
		return "", fmt.Errorf("%w: expected email scope, got %q", apperrors.ErrInvalidScope, claims.Scope)
	}
	return claims.Subject, nil
}

func userCacheKey(username string) string {
	return "user:" + username
}

// ResolveCurrentUser resolves a bearer access token to the full user record.
//
// The cache is read-through with TTL expiry only: a hit skips the credential store
// entirely, a miss (or an unreadable entry) falls back to it and repopulates the
// cache. Cached snapshots may lag the store by up to the TTL for profile fields;
// anything authorization-critical (refresh rotation) reads the store directly.
func (s *tokenService) ResolveCurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	username, err := s.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	key := userCacheKey(username)
	if cached, cerr := s.cache.Get(ctx, key); cerr == nil && cached != nil {
		var user domain.User
		if jerr := json.Unmarshal(cached, &user); jerr == nil {
			return &user, nil
		}
		// Corrupt entry: fall through to the store.
	}

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %q no longer exists", apperrors.ErrUnauthenticated, username)
		}
		return nil, fmt.Errorf("failed to resolve user %q: %w", username, err)
	}

	if snapshot, jerr := json.Marshal(user); jerr == nil {
		// Best effort; a failed cache write just means the next call misses too.
		_ = s.cache.Set(ctx, key, snapshot, s.cfg.UserCacheTTL)
	}

	return user, nil
}

// RotateRefreshToken exchanges a presented refresh token for a fresh token pair,
// enforcing the single-active-token policy.
//
// The user is loaded from the credential store, never the cache, and the replacement
// is a compare-and-swap keyed on the presented token's hash, so two concurrent
// rotations of the same token cannot both succeed. Any mismatch, whether a stale
// token or a lost race, revokes the stored token and surfaces as reuse detection.
func (s *tokenService) RotateRefreshToken(ctx context.Context, presentedToken string) (*domain.TokenPair, error) {
	username, err := s.VerifyRefreshToken(presentedToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %q no longer exists", apperrors.ErrUnauthenticated, username)
		}
		return nil, fmt.Errorf("failed to load user for refresh rotation: %w", err)
	}

	presentedHash := utils.HashRefreshToken(presentedToken)
	if user.RefreshTokenHash == "" || user.RefreshTokenHash != presentedHash {
		if cerr := s.userRepo.ClearRefreshToken(ctx, user.UserID); cerr != nil {
			return nil, fmt.Errorf("failed to revoke refresh token after mismatch: %w", cerr)
		}
		return nil, apperrors.ErrTokenReuseDetected
	}

	pair, newHash, err := s.issueTokenPair(username)
	if err != nil {
		return nil, err
	}

	swapped, err := s.userRepo.RotateRefreshToken(ctx, user.UserID, presentedHash, newHash)
	if err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if !swapped {
		// Lost a concurrent rotation race: the stored value changed between the read
		// above and the swap. Treat it the same as reuse.
		if cerr := s.userRepo.ClearRefreshToken(ctx, user.UserID); cerr != nil {
			return nil, fmt.Errorf("failed to revoke refresh token after lost rotation race: %w", cerr)
		}
		return nil, apperrors.ErrTokenReuseDetected
	}

	return pair, nil
}

// Authenticate verifies username/password credentials and starts a session.
func (s *tokenService) Authenticate(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user for authentication: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, apperrors.ErrEmailNotConfirmed
	}

	pair, newHash, err := s.issueTokenPair(username)
	if err != nil {
		return nil, err
	}

	// Login replaces whatever token was stored before; no CAS needed here.
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, newHash); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return pair, nil
}

func (s *tokenService) issueTokenPair(username string) (*domain.TokenPair, string, error) {
	accessToken, err := s.IssueAccessToken(username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.IssueRefreshToken(username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue refresh token: %w", err)
	}
	pair := &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}
	return pair, utils.HashRefreshToken(refreshToken), nil
}
