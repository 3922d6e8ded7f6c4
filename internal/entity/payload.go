package entity

type PayloadType string

const (
	PayloadSingleCall   PayloadType = "single_call"
	PayloadDailySummary PayloadType = "daily_summary"
	PayloadTest         PayloadType = "test"
)

// WebhookPayload is flat on purpose: the spreadsheet automation on the
// receiving end cannot read nested objects. Field names are a contract.
type WebhookPayload struct {
	Type      PayloadType `json:"type"`
	AgentName string      `json:"agent_name"`
	Timestamp string      `json:"timestamp,omitempty"`
	Date      string      `json:"date,omitempty"`

	CallStatus      string  `json:"call_status,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`

	TotalCalls         *int   `json:"total_calls,omitempty"`
	TotalSales         *int   `json:"total_sales,omitempty"`
	FailedTotal        *int   `json:"failed_total,omitempty"`
	ConversionRate     string `json:"conversion_rate,omitempty"`
	TopRejectionReason string `json:"top_rejection_reason,omitempty"`

	CountNoMoney       *int `json:"count_no_money,omitempty"`
	CountNoCredit      *int `json:"count_no_credit,omitempty"`
	CountNotInterested *int `json:"count_not_interested,omitempty"`
	CountOther         *int `json:"count_other,omitempty"`
}
