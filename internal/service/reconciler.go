package service

import (
	"strings"

	"zap-feed-service/internal/core/domain"
)

// Reconciler reconstructs logical peer-to-peer transfers from the flat stream
// of per-wallet debit/credit rows the upstream ledger exposes. The ledger
// emits two rows per internal transfer sharing a checking id once the
// internal prefix is stripped; the reconciler collapses each such pair into
// one attributed event and drops everything that is not a peer transfer.
//
// Reconcile is a pure function of its inputs: the accepted event set does not
// depend on fetch completion order, and running it twice over the same rows
// yields the same events.
type Reconciler struct {
	internalPrefix string
	excludeMemo    string
	maxRecords     int
}

// NewReconciler creates a reconciler. excludeMemo is the system-transaction
// memo substring (rows containing it are never transfers); maxRecords caps
// the emitted event count, 0 meaning no cap.
func NewReconciler(internalPrefix, excludeMemo string, maxRecords int) *Reconciler {
	return &Reconciler{
		internalPrefix: internalPrefix,
		excludeMemo:    excludeMemo,
		maxRecords:     maxRecords,
	}
}

// Reconcile matches the debit side of each internal transfer to its credit
// sibling and attributes both ends through the owner map.
//
// Only negative rows on source-role wallets are candidates; a candidate is
// accepted when a positive sibling exists on a different, destination-role
// wallet. Payments that left the ledger have no such sibling and are skipped.
// The result preserves the arrival order of the rows; sorting belongs to the
// presentation pipeline.
func (r *Reconciler) Reconcile(
	rows []domain.LedgerPayment,
	roles map[string]domain.WalletRole,
	owners WalletOwners,
	usersByID map[string]domain.User,
) []domain.ZapEvent {
	// Index every row by stripped checking id so the other side of a
	// transfer is an O(1) lookup. Non-candidate rows stay in the index; the
	// credit leg is never a candidate but must be findable as a sibling.
	index := make(map[string][]domain.LedgerPayment)
	for _, row := range rows {
		id := r.stripPrefix(row.CheckingID)
		if id == "" {
			continue
		}
		index[id] = append(index[id], row)
	}

	seen := make(map[string]struct{})
	var events []domain.ZapEvent

	for _, row := range rows {
		if r.maxRecords > 0 && len(events) >= r.maxRecords {
			break
		}
		if !r.isCandidate(row, roles) {
			continue
		}

		cleanID := r.stripPrefix(row.CheckingID)
		if cleanID == "" {
			// No checking id, nothing to match against.
			continue
		}
		// A stripped id should never recur across candidates; keep only the
		// first-seen row if the upstream ever violates that.
		if _, dup := seen[cleanID]; dup {
			continue
		}
		seen[cleanID] = struct{}{}

		sibling, ok := r.findSibling(row, index[cleanID], roles)
		if !ok {
			// Payment left the organization; not a peer transfer.
			continue
		}

		events = append(events, domain.ZapEvent{
			Sender:    r.attribute(row.WalletID, row.Extra, extraFrom, owners, usersByID),
			Recipient: r.attribute(sibling.WalletID, row.Extra, extraTo, owners, usersByID),
			Payment:   row,
		})
	}

	return events
}

// isCandidate selects the debit leg of a potential transfer: an outgoing row
// on a source-role wallet that is not a system transaction.
func (r *Reconciler) isCandidate(row domain.LedgerPayment, roles map[string]domain.WalletRole) bool {
	if row.WalletID == "" {
		return false
	}
	if roles[row.WalletID] != domain.RoleSource {
		return false
	}
	if !row.IsOutgoing() {
		return false
	}
	if r.excludeMemo != "" && strings.Contains(row.Memo, r.excludeMemo) {
		return false
	}
	return true
}

// findSibling returns the credit leg matching the candidate: a positive row
// on a different wallet carrying the destination role.
func (r *Reconciler) findSibling(
	candidate domain.LedgerPayment,
	siblings []domain.LedgerPayment,
	roles map[string]domain.WalletRole,
) (domain.LedgerPayment, bool) {
	for _, s := range siblings {
		if s.WalletID == candidate.WalletID || s.WalletID == "" {
			continue
		}
		if s.Amount <= 0 {
			continue
		}
		if roles[s.WalletID] != domain.RoleDestination {
			continue
		}
		return s, true
	}
	return domain.LedgerPayment{}, false
}

type extraSide int

const (
	extraFrom extraSide = iota
	extraTo
)

// attribute resolves a wallet to its owner, falling back to the user id hint
// in the row's extra metadata when the owner lookup fails. Returns nil when
// both fail; the event is still emitted and the display layer shows a
// placeholder.
func (r *Reconciler) attribute(
	walletID string,
	extra *domain.PaymentExtra,
	side extraSide,
	owners WalletOwners,
	usersByID map[string]domain.User,
) *domain.User {
	if owner, ok := owners[walletID]; ok {
		return &owner
	}
	if extra == nil {
		return nil
	}
	var party *domain.PaymentParty
	if side == extraFrom {
		party = extra.From
	} else {
		party = extra.To
	}
	if party == nil || party.User == "" {
		return nil
	}
	if u, ok := usersByID[party.User]; ok {
		return &u
	}
	return nil
}

// stripPrefix removes the internal-transfer marker from a checking id.
func (r *Reconciler) stripPrefix(checkingID string) string {
	return strings.TrimPrefix(checkingID, r.internalPrefix)
}
