package domain

import "strings"

// AnonymousMemoPrefix marks zaps whose sender chose not to be shown.
const AnonymousMemoPrefix = "[Anonymous] "

// ZapEvent is one reconciled peer-to-peer transfer: the debit and credit rows
// of an internal transfer collapsed into a single attributed event. Sender or
// Recipient is nil when attribution failed; the event is still shown with a
// placeholder.
type ZapEvent struct {
	Sender    *User         `json:"sender"`
	Recipient *User         `json:"recipient"`
	Payment   LedgerPayment `json:"payment"`
}

// AmountMsat returns the transferred amount as a positive millisatoshi value
// regardless of which ledger side the underlying row came from.
func (e ZapEvent) AmountMsat() int64 {
	if e.Payment.Amount < 0 {
		return -e.Payment.Amount
	}
	return e.Payment.Amount
}

// Time returns the transfer timestamp in Unix seconds.
func (e ZapEvent) Time() UnixTime {
	return e.Payment.Time
}

// IsAnonymous reports whether the sender asked to be hidden.
func (e ZapEvent) IsAnonymous() bool {
	return strings.HasPrefix(e.Payment.Memo, AnonymousMemoPrefix)
}

// DisplayMemo returns the memo with the anonymous marker stripped.
func (e ZapEvent) DisplayMemo() string {
	return strings.TrimPrefix(e.Payment.Memo, AnonymousMemoPrefix)
}
