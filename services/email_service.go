package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"fueltrack-api/calculations"
	"fueltrack-api/config"
	"fueltrack-api/logger"
)

// Mailer sends service reminders to vehicle owners.
type Mailer interface {
	SendServiceReminder(to, vehicleName string, status calculations.MaintenanceStatus) error
}

type EmailService struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
	log    logger.Logger
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    logger.New("email"),
	}
}

// ServiceReminderMessage builds the reminder mail without sending it.
func (es *EmailService) ServiceReminderMessage(to, vehicleName string, status calculations.MaintenanceStatus) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", to)

	subject := fmt.Sprintf("FuelTrack - %s service due soon", vehicleName)
	if status.Status == calculations.StatusOverdue {
		subject = fmt.Sprintf("FuelTrack - %s service overdue", vehicleName)
	}
	m.SetHeader("Subject", subject)

	lastService := "No service on record"
	if status.LastServiceAt != nil {
		lastService = status.LastServiceAt.Format("Jan 2, 2006")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #0f766e; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .status { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>FuelTrack</h1>
            <p>Service reminder</p>
        </div>
        <div class="content">
            <h2>%s</h2>
            <div class="status">
                <strong>%s</strong><br>
                %s
            </div>
            <p>Last service: %s</p>
            <p>Distance since last service: %.0f</p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`, vehicleName, status.Status, dueText(status), lastService, status.DistanceSinceService)

	textBody := fmt.Sprintf(`
%s

%s: %s

Last service: %s
Distance since last service: %.0f

This is an automated email, please do not reply.
`, vehicleName, status.Status, dueText(status), lastService, status.DistanceSinceService)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

func (es *EmailService) SendServiceReminder(to, vehicleName string, status calculations.MaintenanceStatus) error {
	if err := es.dialer.DialAndSend(es.ServiceReminderMessage(to, vehicleName, status)); err != nil {
		return fmt.Errorf("failed to send service reminder: %w", err)
	}
	es.log.Infof("service reminder for %s sent to %s", vehicleName, to)
	return nil
}

func dueText(status calculations.MaintenanceStatus) string {
	if status.DueIn <= 0 {
		return fmt.Sprintf("Service is overdue by %.0f.", -status.DueIn)
	}
	return fmt.Sprintf("Service is due in %.0f.", status.DueIn)
}
