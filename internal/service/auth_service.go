package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
)

// AuthServiceImpl implements ports.AuthService by resolving external
// directory identities against the ledger roster.
type AuthServiceImpl struct {
	client    ports.LedgerClient
	cache     ports.FeedCache
	tokenSvc  ports.TokenService
	cacheName string
	log       zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	client ports.LedgerClient,
	cache ports.FeedCache,
	tokenSvc ports.TokenService,
	cacheName string,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		client:    client,
		cache:     cache,
		tokenSvc:  tokenSvc,
		cacheName: cacheName,
		log:       log,
	}
}

// StartSession looks the directory object id up in the roster and issues a
// session token for the matching user.
func (s *AuthServiceImpl) StartSession(ctx context.Context, aadObjectID string) (string, time.Time, *domain.User, error) {
	if aadObjectID == "" {
		return "", time.Time{}, nil, apperror.ErrUnknownIdentity()
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return "", time.Time{}, nil, apperror.ErrUpstreamUnavailable(err)
	}

	for _, u := range users {
		if u.AADObjectID != aadObjectID {
			continue
		}
		token, expiresAt, err := s.tokenSvc.Generate(u)
		if err != nil {
			return "", time.Time{}, nil, err
		}
		s.log.Info().Str("user_id", u.ID).Msg("session started")
		return token, expiresAt, &u, nil
	}

	return "", time.Time{}, nil, apperror.ErrUnknownIdentity()
}

// EndSession drops session-lifetime state: the feed cache and the cached
// upstream operator token. Tokens expire on their own; what must not outlive
// the session is the cached data it saw.
func (s *AuthServiceImpl) EndSession(ctx context.Context) error {
	s.client.InvalidateToken()
	if err := s.cache.Invalidate(ctx, s.cacheName); err != nil {
		return apperror.InternalError(err)
	}
	s.log.Info().Msg("session ended, caches invalidated")
	return nil
}
