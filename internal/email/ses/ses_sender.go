package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"concursos/internal/domain"
	"concursos/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendRunSummary(ctx context.Context, toEmail string, run *domain.CrawlRun) error {
	subject := fmt.Sprintf("Crawl run %s: %d exams found, %d queued",
		run.Status, run.ExamsFound, run.ExamsQueued)
	htmlBody := buildRunSummaryHTML(run)
	textBody := buildRunSummaryText(run)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRunSummaryText(run *domain.CrawlRun) string {
	msg := fmt.Sprintf("Crawl run %s finished with status %q.\n\nExams found: %d\nExams queued: %d\nStarted at: %s\n",
		run.ID, run.Status, run.ExamsFound, run.ExamsQueued, run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	if run.Error != "" {
		msg += fmt.Sprintf("\nError: %s\n", run.Error)
	}
	return msg
}

func buildRunSummaryHTML(run *domain.CrawlRun) string {
	errorRow := ""
	if run.Error != "" {
		errorRow = fmt.Sprintf(`<tr><td style="padding: 4px 12px;"><b>Error</b></td><td style="padding: 4px 12px; color: #B91C1C;">%s</td></tr>`, run.Error)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Crawl run finished: %s</h2>
  <table style="border-collapse: collapse;">
    <tr><td style="padding: 4px 12px;"><b>Run</b></td><td style="padding: 4px 12px;">%s</td></tr>
    <tr><td style="padding: 4px 12px;"><b>Exams found</b></td><td style="padding: 4px 12px;">%d</td></tr>
    <tr><td style="padding: 4px 12px;"><b>Exams queued</b></td><td style="padding: 4px 12px;">%d</td></tr>
    <tr><td style="padding: 4px 12px;"><b>Started at</b></td><td style="padding: 4px 12px;">%s</td></tr>
    %s
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Concursos Watcher</p>
</body>
</html>`, run.Status, run.ID, run.ExamsFound, run.ExamsQueued,
		run.StartedAt.Format("2006-01-02 15:04:05 MST"), errorRow)
}
