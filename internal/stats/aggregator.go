// Package stats turns a day's call records into the dashboard figures and
// the flat payloads the webhook consumer expects.
package stats

import (
	"math"
	"math/big"
	"strconv"

	"github.com/xavierca1/calltracker/internal/entity"
)

// ComputeDaily aggregates calls for date. It does not filter by date; callers
// pass the records of the day. The result depends only on its inputs.
func ComputeDaily(calls []entity.CallRecord, date string) entity.DailyStats {
	total := len(calls)
	sales := 0
	counts := make(map[entity.RejectionReason]int, len(entity.RejectionReasons))
	for _, r := range entity.RejectionReasons {
		counts[r] = 0
	}

	for _, c := range calls {
		if c.Status == entity.StatusDeal {
			sales++
			continue
		}
		if c.Status != entity.StatusNoDeal || c.RejectionReason == nil {
			continue
		}
		if _, known := counts[*c.RejectionReason]; known {
			counts[*c.RejectionReason]++
		}
	}

	failed := total - sales

	return entity.DailyStats{
		Date:               date,
		TotalCalls:         total,
		TotalSales:         sales,
		FailedTotal:        failed,
		ConversionRate:     conversionRate(sales, total),
		TopRejectionReason: topReason(counts, failed),
		RejectionCounts:    counts,
	}
}

// topReason walks the declared order so ties go to the earlier reason.
func topReason(counts map[entity.RejectionReason]int, failed int) string {
	if failed == 0 {
		return entity.TopReasonNotApplicable
	}

	top := ""
	max := 0
	for _, r := range entity.RejectionReasons {
		if counts[r] > max {
			max = counts[r]
			top = string(r)
		}
	}
	if max == 0 {
		return entity.TopReasonNone
	}
	return top
}

func conversionRate(sales, total int) string {
	if total == 0 {
		return "0%"
	}
	return formatPercent(float64(sales)/float64(total)*100) + "%"
}

// formatPercent rounds the exact binary value to one decimal. Exact halves
// go up, which strconv alone would send to even.
func formatPercent(rate float64) string {
	if isExactHalfAtOneDecimal(rate) {
		rate = math.Nextafter(rate, math.Inf(1))
	}
	return strconv.FormatFloat(rate, 'f', 1, 64)
}

func isExactHalfAtOneDecimal(v float64) bool {
	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	whole, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(x, new(big.Float).SetInt(whole))
	return frac.Cmp(big.NewFloat(0.5)) == 0
}
