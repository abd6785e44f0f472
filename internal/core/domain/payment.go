package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// UnixTime is a payment timestamp. The upstream ledger emits it either as
// epoch seconds (number) or as an ISO-8601 string depending on the endpoint;
// both forms decode to Unix seconds so time-window comparisons use one unit.
type UnixTime int64

// UnmarshalJSON accepts a JSON number (epoch seconds, possibly fractional)
// or an RFC 3339 string.
func (t *UnixTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*t = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*t = 0
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parsing payment time %q: %w", s, err)
		}
		*t = UnixTime(parsed.Unix())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*t = UnixTime(int64(f))
	return nil
}

// MarshalJSON always emits epoch seconds.
func (t UnixTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(t))
}

// Time returns the timestamp as a UTC time.Time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// PaymentParty is a sender/recipient hint carried in a payment's extra
// metadata. It names a ledger user id directly.
type PaymentParty struct {
	User string `json:"user,omitempty"`
}

// PaymentExtra is the structured side-channel the upstream attaches to some
// payments. Modeled with named optional fields rather than an open map so the
// fallback attribution stays type-safe.
type PaymentExtra struct {
	From *PaymentParty `json:"from,omitempty"`
	To   *PaymentParty `json:"to,omitempty"`
	Tag  string        `json:"tag,omitempty"`
}

// LedgerPayment is one raw debit or credit row from the upstream ledger,
// scoped to a single wallet. An internal transfer between two wallets shows
// up as two rows sharing a checking id.
type LedgerPayment struct {
	CheckingID string        `json:"checking_id"`
	WalletID   string        `json:"wallet_id"`
	Amount     int64         `json:"amount"` // millisatoshis, negative = outgoing
	Memo       string        `json:"memo"`
	Time       UnixTime      `json:"time"`
	Bolt11     string        `json:"bolt11,omitempty"`
	Extra      *PaymentExtra `json:"extra,omitempty"`
}

// IsOutgoing reports whether this row debits its wallet.
func (p LedgerPayment) IsOutgoing() bool {
	return p.Amount < 0
}
