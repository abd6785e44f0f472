package service

import (
	"sort"
	"strings"

	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
)

// Presenter turns a reconciled event list into a sorted, filtered page.
// Sorting is stable so equal keys keep reconciliation order; the input slice
// is never mutated.
type Presenter struct {
	defaultPageSize int
}

func NewPresenter(defaultPageSize int) *Presenter {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &Presenter{defaultPageSize: defaultPageSize}
}

// Present applies the cutoff filter, sorts, and paginates. cutoff is a Unix
// second, 0 meaning no filter. An out-of-range page clamps to the last page;
// pageCount never reports below 1 even for an empty result.
func (p *Presenter) Present(
	events []domain.ZapEvent,
	field ports.SortField,
	order ports.SortOrder,
	cutoff int64,
	page, pageSize int,
) ports.FeedPage {
	filtered := FilterSince(events, cutoff)

	sorted := make([]domain.ZapEvent, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j], field, order)
	})

	if pageSize <= 0 {
		pageSize = p.defaultPageSize
	}
	total := len(sorted)
	pageCount := (total + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return ports.FeedPage{
		Events:    sorted[start:end],
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}
}

// FilterSince drops events older than the cutoff Unix second. cutoff 0
// passes everything through unchanged.
func FilterSince(events []domain.ZapEvent, cutoff int64) []domain.ZapEvent {
	if cutoff <= 0 {
		return events
	}
	out := make([]domain.ZapEvent, 0, len(events))
	for _, e := range events {
		if int64(e.Payment.Time) >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

func less(a, b domain.ZapEvent, field ports.SortField, order ports.SortOrder) bool {
	var cmp int
	switch field {
	case ports.SortBySender:
		cmp = compareStrings(partyName(a.Sender), partyName(b.Sender))
	case ports.SortByRecipient:
		cmp = compareStrings(partyName(a.Recipient), partyName(b.Recipient))
	case ports.SortByAmount:
		cmp = compareInt64(a.AmountMsat(), b.AmountMsat())
	default:
		cmp = compareInt64(int64(a.Payment.Time), int64(b.Payment.Time))
	}
	if order == ports.SortDesc {
		return cmp > 0
	}
	return cmp < 0
}

func partyName(u *domain.User) string {
	if u == nil {
		return ""
	}
	return strings.ToLower(u.DisplayName)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
