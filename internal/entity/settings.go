package entity

const DefaultReportTime = "18:00"

type AppSettings struct {
	AgentName       string `json:"agentName"`
	WebhookURL      string `json:"webhookUrl"`
	DailyReportTime string `json:"dailyReportTime"` // 24h "HH:MM"
}

func DefaultSettings() AppSettings {
	return AppSettings{
		AgentName:       "",
		WebhookURL:      "",
		DailyReportTime: DefaultReportTime,
	}
}

func (s AppSettings) HasWebhook() bool {
	return s.WebhookURL != ""
}
