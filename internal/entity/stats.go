package entity

const (
	TopReasonNotApplicable = "N/A"
	TopReasonNone          = "None"
)

// DailyStats is derived from the call list on every read and never persisted.
type DailyStats struct {
	Date               string                  `json:"date"`
	TotalCalls         int                     `json:"totalCalls"`
	TotalSales         int                     `json:"totalSales"`
	FailedTotal        int                     `json:"failedTotal"`
	ConversionRate     string                  `json:"conversionRate"`
	TopRejectionReason string                  `json:"topRejectionReason"`
	RejectionCounts    map[RejectionReason]int `json:"rejectionCounts"`
}
