package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/models"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

// SendLeadNotification forwards a contact-form lead to the studio inbox.
func (s *EmailService) SendLeadNotification(lead models.Lead, to string) error {
	body := fmt.Sprintf(
		"New lead %s\n\nName: %s\nEmail: %s\nService: %s\nBudget: %s\n\n%s\n",
		lead.ID, lead.Name, lead.Email, lead.Service, lead.Budget, lead.Message,
	)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "New lead: " + lead.Name,
		Text:    body,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send lead notification",
			zap.String("lead_id", lead.ID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("lead notification sent",
		zap.String("lead_id", lead.ID),
		zap.String("email_id", resp.Id),
	)
	return nil
}

// SendPaymentNotification tells the studio inbox that a deposit came in.
func (s *EmailService) SendPaymentNotification(notice models.PaymentNotice, to string) error {
	body := fmt.Sprintf(
		"Deposit received.\n\nSession: %s\nPlan: %s\nCustomer: %s\n",
		notice.SessionID, notice.PlanID, notice.CustomerEmail,
	)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Deposit received — " + notice.PlanID,
		Text:    body,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send payment notification",
			zap.String("session_id", notice.SessionID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("payment notification sent",
		zap.String("session_id", notice.SessionID),
		zap.String("email_id", resp.Id),
	)
	return nil
}
