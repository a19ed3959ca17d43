package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"greenlens/internal/domain"
	"greenlens/internal/port"
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

func (s *sesSender) SendReportEmail(ctx context.Context, toEmail, toName string, metrics *domain.SustainabilityMetrics) error {
	subject := "Your GreenLens sustainability report"
	htmlBody := buildReportHTML(toName, metrics)
	textBody := buildReportText(toName, metrics)

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

func buildReportText(toName string, m *domain.SustainabilityMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nHere is your sustainability summary over %d documents:\n\n", toName, m.DocumentCount)
	fmt.Fprintf(&b, "Total emissions: %.5f %s\n", m.TotalEmissions, m.Unit)
	for category, v := range m.Breakdown {
		fmt.Fprintf(&b, "  %s: %.5f %s\n", category, v, m.Unit)
	}
	fmt.Fprintf(&b, "\nEnergy usage: %.1f kWh\nWater consumption: %.1f L\nFuel consumption: %.1f L\nWaste generated: %.1f kg\n",
		m.EnergyUsage, m.WaterConsumption, m.FuelConsumption, m.WasteGeneration)
	fmt.Fprintf(&b, "\nESG score: %.1f / 100\n\nGreenLens Team", m.ESGScore)
	return b.String()
}

func buildReportHTML(toName string, m *domain.SustainabilityMetrics) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`)
	fmt.Fprintf(&b, "<h2>Sustainability Report</h2><p>Hi %s,</p>", toName)
	fmt.Fprintf(&b, "<p>Summary over <strong>%d</strong> documents:</p>", m.DocumentCount)
	fmt.Fprintf(&b, "<p>Total emissions: <strong>%.5f %s</strong></p><ul>", m.TotalEmissions, m.Unit)
	for category, v := range m.Breakdown {
		fmt.Fprintf(&b, "<li>%s: %.5f %s</li>", category, v, m.Unit)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>ESG score: <strong>%.1f / 100</strong></p>", m.ESGScore)
	b.WriteString("<p>GreenLens Team</p></div>")
	return b.String()
}
