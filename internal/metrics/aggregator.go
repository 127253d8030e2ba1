// Package metrics computes derived dashboard views from a ledger snapshot.
//
// Every function is pure and stateless: it takes the full set of transactions
// returned by one ledger listing and is deterministic for that snapshot.
// Callers recompute after every ledger mutation instead of relying on any
// cached state here.
package metrics

import (
	"errors"
	"time"

	"tally/internal/core"
)

const (
	Daily   Granularity = "day"
	Monthly Granularity = "month"
)

type (
	// Granularity selects the trend bucket width.
	Granularity string

	// TrendPoint is one calendar bucket with its net amount (income minus
	// expenses within the bucket).
	TrendPoint struct {
		Bucket string // YYYY-MM-DD for daily, YYYY-MM for monthly
		Net    core.Money
	}
)

var ErrInvalidGranularity = errors.New("invalid granularity")

func (g Granularity) Validate() error {
	switch g {
	case Daily, Monthly:
		return nil
	default:
		return ErrInvalidGranularity
	}
}

// signed returns the transaction's contribution to a net total.
func signed(t core.Transaction) int64 {
	if t.Type == core.Income {
		return t.Amount.Cents
	}
	return -t.Amount.Cents
}

// Balance is the signed net total over the full snapshot: the sum of income
// amounts minus the sum of expense amounts.
func Balance(snapshot []core.Transaction) core.Money {
	var cents int64
	for _, t := range snapshot {
		cents += signed(t)
	}
	return core.Money{Cents: cents}
}

// SafeToSpend is the balance restricted to a period: income within the period
// minus expenses within it. An empty period yields zero. This is a simple
// period-scoped net, not a forecast.
func SafeToSpend(snapshot []core.Transaction, period core.Period) core.Money {
	var cents int64
	for _, t := range snapshot {
		if period.Contains(t.Date) {
			cents += signed(t)
		}
	}
	return core.Money{Cents: cents}
}

// CategoryBreakdown sums amounts per category for one transaction type,
// optionally restricted to a period. Categories without matching transactions
// are omitted; the map carries no ordering.
func CategoryBreakdown(snapshot []core.Transaction, txType core.TransactionType, period *core.Period) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, t := range snapshot {
		if t.Type != txType {
			continue
		}
		if period != nil && !period.Contains(t.Date) {
			continue
		}
		out[t.Category] = out[t.Category].Add(t.Amount)
	}
	return out
}

// Trend produces one point per calendar bucket spanning the snapshot's full
// observed date range. Buckets with no transactions appear with a zero net so
// the sequence has no gaps. An empty snapshot yields an empty sequence.
func Trend(snapshot []core.Transaction, g Granularity) []TrendPoint {
	if len(snapshot) == 0 {
		return nil
	}

	layout := "2006-01-02"
	if g == Monthly {
		layout = "2006-01"
	}

	earliest := snapshot[0].Date.Time
	latest := snapshot[0].Date.Time
	nets := make(map[string]int64, len(snapshot))
	for _, t := range snapshot {
		if t.Date.Time.Before(earliest) {
			earliest = t.Date.Time
		}
		if t.Date.Time.After(latest) {
			latest = t.Date.Time
		}
		nets[t.Date.Format(layout)] += signed(t)
	}

	var points []TrendPoint
	cur := bucketStart(earliest, g)
	end := bucketStart(latest, g)
	for !cur.After(end) {
		label := cur.Format(layout)
		points = append(points, TrendPoint{
			Bucket: label,
			Net:    core.Money{Cents: nets[label]},
		})
		cur = nextBucket(cur, g)
	}
	return points
}

func bucketStart(t time.Time, g Granularity) time.Time {
	if g == Monthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextBucket(t time.Time, g Granularity) time.Time {
	if g == Monthly {
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}
