package ports

import (
	"context"
	"time"

	"zap-feed-service/internal/core/domain"
)

// SortField selects which column the presentation pipeline orders by.
type SortField string

const (
	SortByTime      SortField = "time"
	SortBySender    SortField = "from"
	SortByRecipient SortField = "to"
	SortByAmount    SortField = "amount"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FeedQuery holds validated input for one feed load.
type FeedQuery struct {
	Since     int64 // Unix seconds cutoff, 0 = since epoch
	SortField SortField
	SortOrder SortOrder
	Page      int
	PageSize  int  // 0 = configured default
	Refresh   bool // bypass the event cache for this load
	// CurrentUserID marks the caller. A wallet-list failure for this user
	// fails the load; failures for other users degrade to an empty list.
	CurrentUserID string
}

// FeedPage is one page of the presented feed.
type FeedPage struct {
	Events    []domain.ZapEvent
	Page      int
	PageCount int
	Total     int
}

// FeedStats aggregates the reconciled events for the dashboard header.
type FeedStats struct {
	TotalZappedSat int64
	EventCount     int
	SenderCount    int
	BiggestZapSat  int64
	AveragePerDay  float64
}

// FeedService loads, reconciles and presents the zap activity feed.
type FeedService interface {
	LoadFeed(ctx context.Context, q FeedQuery) (*FeedPage, error)
	FeedStats(ctx context.Context, since int64) (*FeedStats, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// AllowanceBalanceMsat returns the balance of the user's source wallet.
	AllowanceBalanceMsat(ctx context.Context, userID string) (int64, error)
}

// SendZapRequest holds validated input for originating one transfer.
type SendZapRequest struct {
	SenderID    string
	RecipientID string
	AmountSat   int64
	Memo        string
	Anonymous   bool
}

// SendZapResult reports a settled transfer.
type SendZapResult struct {
	PaymentHash string
	Bolt11      string
}

// TransferService originates a new zap through the upstream payment API.
// The reconciler never depends on it; it only consumes the ledger rows the
// settled payment leaves behind.
type TransferService interface {
	SendZap(ctx context.Context, req SendZapRequest) (*SendZapResult, error)
}

// AuthService exchanges an external identity for a session and tears the
// session's cached state down again on logout.
type AuthService interface {
	// StartSession resolves aadObjectID against the ledger roster and issues
	// a session token for the matching user.
	StartSession(ctx context.Context, aadObjectID string) (string, time.Time, *domain.User, error)
	// EndSession invalidates the process-lifetime caches for the session.
	EndSession(ctx context.Context) error
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	UserID      string
	AADObjectID string
	DisplayName string
}

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(user domain.User) (string, time.Time, error)
	Validate(token string) (*TokenClaims, error)
}
