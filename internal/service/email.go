package service

import (
	"context"
	"fmt"

	"ilas-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, bookTitle string, daysOverdue int) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(name, email)
	subject := fmt.Sprintf("Overdue reminder: %s", bookTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nThe book \"%s\" is %d day(s) overdue. Please return it to the library to avoid further fines.\n\nILAS Library",
		name, bookTitle, daysOverdue,
	)

	message := mail.NewSingleEmail(from, subject, to, body, "")
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}

	logger.Debug("overdue reminder sent", "email", email, "book", bookTitle)
	return nil
}
