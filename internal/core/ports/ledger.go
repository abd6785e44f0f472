package ports

import (
	"context"

	"zap-feed-service/internal/core/domain"
)

// LedgerClient is the surface of the upstream custodial wallet API that the
// feed consumes. Implementations authenticate roster-level calls with the
// operator credential; payment reads and invoice operations use the per-wallet
// keys carried on the wallets themselves.
type LedgerClient interface {
	// ListUsers returns the full user roster.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// ListUserWallets returns the non-deleted wallets owned by one user.
	ListUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error)

	// ListPaymentsSince returns payment rows readable with walletInKey whose
	// time is >= since (Unix seconds). A since of 0 means no cutoff.
	ListPaymentsSince(ctx context.Context, walletInKey string, since int64) ([]domain.LedgerPayment, error)

	// WalletBalanceMsat returns the balance of the wallet walletInKey belongs to.
	WalletBalanceMsat(ctx context.Context, walletInKey string) (int64, error)

	// CreateInvoice asks the receiving wallet for a payment request over
	// amountSat satoshis and returns the bolt11 string.
	CreateInvoice(ctx context.Context, walletInKey string, amountSat int64, memo string) (string, error)

	// PayInvoice settles a payment request from the paying wallet and returns
	// the upstream payment hash.
	PayInvoice(ctx context.Context, walletAdminKey string, bolt11 string) (string, error)

	// InvalidateToken drops the cached operator bearer token so the next call
	// re-authenticates. Called on logout; stale credentials must not outlive
	// the session that obtained them.
	InvalidateToken()
}

// FeedCache holds per-process feed state: the user roster and the reconciled
// event list, keyed by a cache name. Entries have no expiry beyond the
// session; callers invalidate explicitly (e.g. on logout).
type FeedCache interface {
	// GetUsers returns the cached roster, or nil, nil on a miss.
	GetUsers(ctx context.Context, name string) ([]domain.User, error)
	SetUsers(ctx context.Context, name string, users []domain.User) error

	// GetEvents returns the cached reconciled events, or nil, nil on a miss.
	GetEvents(ctx context.Context, name string) ([]domain.ZapEvent, error)
	SetEvents(ctx context.Context, name string, events []domain.ZapEvent) error

	// Invalidate removes every entry stored under name.
	Invalidate(ctx context.Context, name string) error
}
