package service

import (
	"context"

	"github.com/rs/zerolog"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
)

// TransferServiceImpl implements ports.TransferService. It originates a zap
// as an invoice against the recipient's private wallet paid from the sender's
// allowance wallet; the upstream ledger settles it internally and the next
// feed pass reconciles the resulting row pair.
type TransferServiceImpl struct {
	client     ports.LedgerClient
	cache      ports.FeedCache
	classifier *WalletClassifier
	cacheName  string
	log        zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	client ports.LedgerClient,
	cache ports.FeedCache,
	classifier *WalletClassifier,
	cacheName string,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		client:     client,
		cache:      cache,
		classifier: classifier,
		cacheName:  cacheName,
		log:        log,
	}
}

// SendZap validates and settles one transfer. The event cache is invalidated
// on success so the next feed load picks the new transfer up.
func (s *TransferServiceImpl) SendZap(ctx context.Context, req ports.SendZapRequest) (*ports.SendZapResult, error) {
	if req.AmountSat <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.SenderID == req.RecipientID {
		return nil, apperror.ErrSelfZap()
	}

	source, err := s.roleWallet(ctx, req.SenderID, domain.RoleSource)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apperror.ErrNoSourceWallet()
	}

	destination, err := s.roleWallet(ctx, req.RecipientID, domain.RoleDestination)
	if err != nil {
		return nil, err
	}
	if destination == nil {
		return nil, apperror.ErrNoDestinationWallet()
	}

	balance, err := s.client.WalletBalanceMsat(ctx, source.InKey)
	if err != nil {
		return nil, apperror.ErrUpstreamUnavailable(err)
	}
	if balance < req.AmountSat*1000 {
		return nil, apperror.ErrInsufficientBalance()
	}

	memo := req.Memo
	if req.Anonymous {
		memo = domain.AnonymousMemoPrefix + memo
	}

	bolt11, err := s.client.CreateInvoice(ctx, destination.InKey, req.AmountSat, memo)
	if err != nil {
		return nil, apperror.ErrUpstreamUnavailable(err)
	}
	hash, err := s.client.PayInvoice(ctx, source.AdminKey, bolt11)
	if err != nil {
		return nil, apperror.ErrUpstreamUnavailable(err)
	}

	// The cached event list predates this transfer now.
	if err := s.cache.Invalidate(ctx, s.cacheName); err != nil {
		s.log.Warn().Err(err).Msg("event cache invalidation after zap failed")
	}

	s.log.Info().
		Str("sender_id", req.SenderID).
		Str("recipient_id", req.RecipientID).
		Int64("amount_sat", req.AmountSat).
		Bool("anonymous", req.Anonymous).
		Msg("zap settled")

	return &ports.SendZapResult{PaymentHash: hash, Bolt11: bolt11}, nil
}

// roleWallet returns the user's first non-deleted wallet carrying role, or
// nil when the user has none.
func (s *TransferServiceImpl) roleWallet(ctx context.Context, userID string, role domain.WalletRole) (*domain.Wallet, error) {
	wallets, err := s.client.ListUserWallets(ctx, userID)
	if err != nil {
		return nil, apperror.ErrUpstreamUnavailable(err)
	}
	for _, w := range wallets {
		if w.Deleted || w.ID == "" {
			continue
		}
		if s.classifier.Classify(w.Name) == role {
			return &w, nil
		}
	}
	return nil, nil
}
