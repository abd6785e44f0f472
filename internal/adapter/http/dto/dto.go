package dto

import (
	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
)

// SessionRequest is the request body for starting a session.
type SessionRequest struct {
	AADObjectID string `json:"aad_object_id" binding:"required,max=64,safe_id"`
}

// SessionResponse is the response body for a started session.
type SessionResponse struct {
	Token  string       `json:"token"`
	Expiry int64        `json:"expiry"` // Unix timestamp
	User   UserResponse `json:"user"`
}

// UserResponse is one roster entry as shown to clients.
type UserResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Type        string `json:"type,omitempty"`
}

// FeedQueryRequest binds the feed list query string.
type FeedQueryRequest struct {
	Since    int64  `form:"since" binding:"omitempty,gte=0"`
	Sort     string `form:"sort" binding:"omitempty,oneof=time from to amount"`
	Order    string `form:"order" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
	Refresh  bool   `form:"refresh"`
}

// ZapEventResponse is one reconciled transfer as shown in the feed. From is
// null for anonymous zaps and for events whose sender could not be
// attributed; To is null only in the unattributed case.
type ZapEventResponse struct {
	From      *UserResponse `json:"from"`
	To        *UserResponse `json:"to"`
	AmountSat int64         `json:"amount_sat"`
	Memo      string        `json:"memo"`
	Anonymous bool          `json:"anonymous"`
	Time      int64         `json:"time"` // Unix timestamp
}

// FeedResponse is one page of the feed.
type FeedResponse struct {
	Events    []ZapEventResponse `json:"events"`
	Page      int                `json:"page"`
	PageCount int                `json:"page_count"`
	Total     int                `json:"total"`
}

// StatsResponse is the aggregate view of the feed.
type StatsResponse struct {
	TotalZappedSat int64   `json:"total_zapped_sat"`
	EventCount     int     `json:"event_count"`
	SenderCount    int     `json:"sender_count"`
	BiggestZapSat  int64   `json:"biggest_zap_sat"`
	AveragePerDay  float64 `json:"average_per_day_sat"`
}

// SendZapRequest is the request body for originating a transfer.
type SendZapRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,max=64,safe_id"`
	AmountSat   int64  `json:"amount_sat" binding:"required,gt=0"`
	Memo        string `json:"memo" binding:"max=200"`
	Anonymous   bool   `json:"anonymous"`
}

// SendZapResponse is the response body for a settled transfer.
type SendZapResponse struct {
	PaymentHash string `json:"payment_hash"`
	Bolt11      string `json:"bolt11"`
}

// BalanceResponse reports the caller's allowance wallet balance.
type BalanceResponse struct {
	BalanceMsat int64 `json:"balance_msat"`
	BalanceSat  int64 `json:"balance_sat"`
}

// FromUser maps a roster entry.
func FromUser(u domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Type:        string(u.Type),
	}
}

// FromZapEvent maps a reconciled event. Anonymous zaps drop the sender from
// the response entirely; unattributed parties come through as null.
func FromZapEvent(e domain.ZapEvent) ZapEventResponse {
	res := ZapEventResponse{
		AmountSat: e.AmountMsat() / 1000,
		Memo:      e.DisplayMemo(),
		Anonymous: e.IsAnonymous(),
		Time:      int64(e.Payment.Time),
	}
	if e.Sender != nil && !res.Anonymous {
		from := FromUser(*e.Sender)
		res.From = &from
	}
	if e.Recipient != nil {
		to := FromUser(*e.Recipient)
		res.To = &to
	}
	return res
}

// FromFeedPage maps one presented page.
func FromFeedPage(p ports.FeedPage) FeedResponse {
	events := make([]ZapEventResponse, 0, len(p.Events))
	for _, e := range p.Events {
		events = append(events, FromZapEvent(e))
	}
	return FeedResponse{
		Events:    events,
		Page:      p.Page,
		PageCount: p.PageCount,
		Total:     p.Total,
	}
}

// FromFeedStats maps the aggregate view.
func FromFeedStats(s ports.FeedStats) StatsResponse {
	return StatsResponse{
		TotalZappedSat: s.TotalZappedSat,
		EventCount:     s.EventCount,
		SenderCount:    s.SenderCount,
		BiggestZapSat:  s.BiggestZapSat,
		AveragePerDay:  s.AveragePerDay,
	}
}

// ToFeedQuery maps validated query params onto the service query.
func (r FeedQueryRequest) ToFeedQuery(currentUserID string) ports.FeedQuery {
	field := ports.SortByTime
	switch r.Sort {
	case "from":
		field = ports.SortBySender
	case "to":
		field = ports.SortByRecipient
	case "amount":
		field = ports.SortByAmount
	}
	order := ports.SortDesc
	if r.Order == "asc" {
		order = ports.SortAsc
	}
	page := r.Page
	if page < 1 {
		page = 1
	}
	return ports.FeedQuery{
		Since:         r.Since,
		SortField:     field,
		SortOrder:     order,
		Page:          page,
		PageSize:      r.PageSize,
		Refresh:       r.Refresh,
		CurrentUserID: currentUserID,
	}
}
