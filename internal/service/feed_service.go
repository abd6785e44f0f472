package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/pkg/apperror"
)

// FeedServiceImpl implements ports.FeedService: it fetches the roster and
// ledger rows from the upstream, reconciles them into events, caches the
// result, and presents the requested page.
type FeedServiceImpl struct {
	client      ports.LedgerClient
	cache       ports.FeedCache
	classifier  *WalletClassifier
	reconciler  *Reconciler
	presenter   *Presenter
	cacheName   string
	concurrency int
	log         zerolog.Logger
}

// NewFeedService creates a new FeedServiceImpl. concurrency bounds parallel
// upstream fetches per pass.
func NewFeedService(
	client ports.LedgerClient,
	cache ports.FeedCache,
	classifier *WalletClassifier,
	reconciler *Reconciler,
	presenter *Presenter,
	cacheName string,
	concurrency int,
	log zerolog.Logger,
) *FeedServiceImpl {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &FeedServiceImpl{
		client:      client,
		cache:       cache,
		classifier:  classifier,
		reconciler:  reconciler,
		presenter:   presenter,
		cacheName:   cacheName,
		concurrency: concurrency,
		log:         log,
	}
}

// LoadFeed returns one presented page of the reconciled feed. The reconciled
// event list is served from the session cache unless q.Refresh forces a new
// upstream pass.
func (s *FeedServiceImpl) LoadFeed(ctx context.Context, q ports.FeedQuery) (*ports.FeedPage, error) {
	events, err := s.loadEvents(ctx, q.Since, q.CurrentUserID, q.Refresh)
	if err != nil {
		return nil, err
	}
	page := s.presenter.Present(events, q.SortField, q.SortOrder, q.Since, q.Page, q.PageSize)
	return &page, nil
}

// FeedStats aggregates the reconciled events at or after since.
func (s *FeedServiceImpl) FeedStats(ctx context.Context, since int64) (*ports.FeedStats, error) {
	events, err := s.loadEvents(ctx, since, "", false)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(events, since)
	return &stats, nil
}

// ListUsers returns the roster, cached for the session.
func (s *FeedServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.loadUsers(ctx, false)
}

// AllowanceBalanceMsat returns the balance of the user's source-role wallet.
func (s *FeedServiceImpl) AllowanceBalanceMsat(ctx context.Context, userID string) (int64, error) {
	wallets, err := s.client.ListUserWallets(ctx, userID)
	if err != nil {
		return 0, apperror.ErrUpstreamUnavailable(err)
	}
	for _, w := range wallets {
		if w.Deleted || w.ID == "" {
			continue
		}
		if s.classifier.Classify(w.Name) != domain.RoleSource {
			continue
		}
		balance, err := s.client.WalletBalanceMsat(ctx, w.InKey)
		if err != nil {
			return 0, apperror.ErrUpstreamUnavailable(err)
		}
		return balance, nil
	}
	return 0, apperror.ErrNoSourceWallet()
}

// loadUsers returns the roster from the cache, falling back to the upstream.
// A roster fetch failure is fatal: without it nothing downstream can be
// attributed.
func (s *FeedServiceImpl) loadUsers(ctx context.Context, refresh bool) ([]domain.User, error) {
	if !refresh {
		users, err := s.cache.GetUsers(ctx, s.cacheName)
		if err != nil {
			s.log.Warn().Err(err).Msg("user cache read failed, falling through to upstream")
		}
		if users != nil {
			return users, nil
		}
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, apperror.ErrUpstreamUnavailable(err)
	}
	if err := s.cache.SetUsers(ctx, s.cacheName, users); err != nil {
		s.log.Warn().Err(err).Msg("user cache write failed")
	}
	return users, nil
}

// loadEvents returns the reconciled event list, serving the cache when it
// holds a pass and running a full upstream pass otherwise.
func (s *FeedServiceImpl) loadEvents(ctx context.Context, since int64, currentUserID string, refresh bool) ([]domain.ZapEvent, error) {
	if !refresh {
		events, err := s.cache.GetEvents(ctx, s.cacheName)
		if err != nil {
			s.log.Warn().Err(err).Msg("event cache read failed, falling through to upstream")
		}
		if events != nil {
			return events, nil
		}
	}

	events, err := s.refreshEvents(ctx, since, currentUserID, refresh)
	if err != nil {
		return nil, err
	}
	if events == nil {
		// A pass that found nothing still fills the cache; nil would read
		// back as a miss.
		events = []domain.ZapEvent{}
	}
	if err := s.cache.SetEvents(ctx, s.cacheName, events); err != nil {
		s.log.Warn().Err(err).Msg("event cache write failed")
	}
	return events, nil
}

// refreshEvents runs one full upstream pass: roster, per-user wallets,
// per-wallet payments, reconciliation.
//
// Partial upstream failures degrade rather than abort: a user whose wallet
// list cannot be fetched contributes nothing to the pass, and a wallet whose
// payments cannot be fetched contributes no rows. The one exception is the
// calling user, whose wallet failure fails the whole load. Only roster-level
// failures are fatal for everyone.
func (s *FeedServiceImpl) refreshEvents(ctx context.Context, since int64, currentUserID string, refresh bool) ([]domain.ZapEvent, error) {
	users, err := s.loadUsers(ctx, refresh)
	if err != nil {
		return nil, err
	}

	walletsByUser, err := s.fetchWallets(ctx, users, currentUserID)
	if err != nil {
		return nil, err
	}

	roles := make(map[string]domain.WalletRole)
	var roleWallets []domain.Wallet
	for _, wallets := range walletsByUser {
		for _, w := range wallets {
			if w.Deleted || w.ID == "" {
				continue
			}
			role := s.classifier.Classify(w.Name)
			if role == domain.RoleNone {
				continue
			}
			roles[w.ID] = role
			roleWallets = append(roleWallets, w)
		}
	}

	rows := s.fetchPayments(ctx, roleWallets, since)

	owners := BuildWalletOwnerMap(users, walletsByUser)
	events := s.reconciler.Reconcile(rows, roles, owners, UsersByID(users))

	s.log.Info().
		Int("users", len(users)).
		Int("wallets", len(roleWallets)).
		Int("rows", len(rows)).
		Int("events", len(events)).
		Msg("feed pass reconciled")

	return events, nil
}

// fetchWallets loads every user's wallet list concurrently. Failures for
// currentUserID abort; other failures log a warning and yield no wallets for
// that user.
func (s *FeedServiceImpl) fetchWallets(ctx context.Context, users []domain.User, currentUserID string) (map[string][]domain.Wallet, error) {
	type result struct {
		userID  string
		wallets []domain.Wallet
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	results := make(chan result, len(users))

	for _, u := range users {
		g.Go(func() error {
			wallets, err := s.client.ListUserWallets(gctx, u.ID)
			if err != nil {
				if u.ID == currentUserID {
					return fmt.Errorf("wallets for current user %s: %w", u.ID, err)
				}
				s.log.Warn().Err(err).Str("user_id", u.ID).Msg("wallet fetch failed, user excluded from pass")
				return nil
			}
			results <- result{userID: u.ID, wallets: wallets}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperror.ErrUpstreamUnavailable(err)
	}
	close(results)

	walletsByUser := make(map[string][]domain.Wallet, len(users))
	for r := range results {
		walletsByUser[r.userID] = r.wallets
	}
	return walletsByUser, nil
}

// fetchPayments loads ledger rows for every role-bearing wallet concurrently.
// A failed wallet contributes no rows; the reconciler is insensitive to row
// arrival order so the concatenation order here does not matter.
func (s *FeedServiceImpl) fetchPayments(ctx context.Context, wallets []domain.Wallet, since int64) []domain.LedgerPayment {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	results := make(chan []domain.LedgerPayment, len(wallets))

	for _, w := range wallets {
		g.Go(func() error {
			rows, err := s.client.ListPaymentsSince(gctx, w.InKey, since)
			if err != nil {
				s.log.Warn().Err(err).Str("wallet_id", w.ID).Msg("payment fetch failed, wallet excluded from pass")
				return nil
			}
			results <- rows
			return nil
		})
	}

	// Workers only return nil; Wait is for completion, not errors.
	_ = g.Wait()
	close(results)

	var rows []domain.LedgerPayment
	for r := range results {
		rows = append(rows, r...)
	}
	return rows
}
