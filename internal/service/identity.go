package service

import "zap-feed-service/internal/core/domain"

// WalletOwners maps a wallet id to its owning user.
type WalletOwners map[string]domain.User

// BuildWalletOwnerMap resolves every non-deleted wallet of every
// successfully-fetched user to exactly one owner. Wallets whose user is not
// in the roster stay unmapped and later resolve to "unknown".
func BuildWalletOwnerMap(users []domain.User, walletsByUser map[string][]domain.Wallet) WalletOwners {
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	owners := make(WalletOwners)
	for userID, wallets := range walletsByUser {
		owner, ok := byID[userID]
		if !ok {
			continue
		}
		for _, w := range wallets {
			if w.Deleted || w.ID == "" {
				continue
			}
			owners[w.ID] = owner
		}
	}
	return owners
}

// UsersByID indexes a roster by user id for hint-based attribution fallback.
func UsersByID(users []domain.User) map[string]domain.User {
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}
