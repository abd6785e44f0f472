package service

import (
	"zap-feed-service/internal/core/domain"
	"zap-feed-service/internal/core/ports"
)

// ComputeStats aggregates feed-level figures over the events at or after the
// cutoff. Amounts are reported in whole satoshis; the per-day average spreads
// the total over the span between the oldest and newest event, never less
// than one day.
func ComputeStats(events []domain.ZapEvent, cutoff int64) ports.FeedStats {
	filtered := FilterSince(events, cutoff)

	var stats ports.FeedStats
	stats.EventCount = len(filtered)
	if len(filtered) == 0 {
		return stats
	}

	senders := make(map[string]struct{})
	var totalMsat, biggestMsat int64
	minTime := int64(filtered[0].Payment.Time)
	maxTime := minTime

	for _, e := range filtered {
		amt := e.AmountMsat()
		totalMsat += amt
		if amt > biggestMsat {
			biggestMsat = amt
		}
		if e.Sender != nil && e.Sender.ID != "" {
			senders[e.Sender.ID] = struct{}{}
		}
		t := int64(e.Payment.Time)
		if t < minTime {
			minTime = t
		}
		if t > maxTime {
			maxTime = t
		}
	}

	stats.TotalZappedSat = totalMsat / 1000
	stats.BiggestZapSat = biggestMsat / 1000
	stats.SenderCount = len(senders)

	days := (maxTime - minTime) / 86400
	if days < 1 {
		days = 1
	}
	stats.AveragePerDay = float64(stats.TotalZappedSat) / float64(days)

	return stats
}
