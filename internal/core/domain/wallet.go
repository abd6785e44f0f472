package domain

// WalletRole is the semantic role derived from a wallet's name.
type WalletRole string

const (
	// RoleSource marks allowance wallets, the only wallets zaps may leave from.
	RoleSource WalletRole = "source"
	// RoleDestination marks private wallets, the only wallets zaps may arrive at.
	RoleDestination WalletRole = "destination"
	// RoleNone marks wallets the feed ignores entirely.
	RoleNone WalletRole = "none"
)

// Wallet mirrors one upstream ledger wallet. InKey authorizes read queries,
// AdminKey authorizes outgoing payment creation.
type Wallet struct {
	ID          string `json:"id"`
	UserID      string `json:"user"`
	Name        string `json:"name"`
	InKey       string `json:"inkey"`
	AdminKey    string `json:"adminkey"`
	BalanceMsat int64  `json:"balance_msat"`
	Deleted     bool   `json:"deleted"`
}
