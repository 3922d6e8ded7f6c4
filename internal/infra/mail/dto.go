package mail

import "github.com/xavierca1/calltracker/internal/entity"

type DailySummaryData struct {
	AgentName string
	Stats     entity.DailyStats
	Reasons   []ReasonRow
}

type ReasonRow struct {
	Label string
	Count int
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string

	dialer dialer
}
