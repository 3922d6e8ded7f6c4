package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/calltracker/internal/entity"
)

//go:embed templates/*.html
var templates embed.FS

var summaryTmpl = template.Must(template.ParseFS(templates, "templates/daily_summary.html"))

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

func (s *EmailSender) SendDailySummary(settings entity.AppSettings, stats entity.DailyStats) error {
	body, err := RenderDailySummary(settings, stats)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from())
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", subject(settings, stats))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send summary e-mail: %w", err)
	}
	return nil
}

func (s *EmailSender) from() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

func subject(settings entity.AppSettings, stats entity.DailyStats) string {
	if settings.AgentName == "" {
		return fmt.Sprintf("Daily call summary %s", stats.Date)
	}
	return fmt.Sprintf("Daily call summary %s (%s)", stats.Date, settings.AgentName)
}

func RenderDailySummary(settings entity.AppSettings, stats entity.DailyStats) (string, error) {
	data := DailySummaryData{AgentName: settings.AgentName, Stats: stats}
	for _, r := range entity.RejectionReasons {
		data.Reasons = append(data.Reasons, ReasonRow{Label: string(r), Count: stats.RejectionCounts[r]})
	}

	var body bytes.Buffer
	if err := summaryTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render summary template: %w", err)
	}
	return body.String(), nil
}
