package service

import (
	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/pkg/email"
)

// NotifySink is the default sink for both payments and leads: structured
// log always, email to the studio inbox when a mailer is configured.
type NotifySink struct {
	logger *zap.Logger
	mailer *email.EmailService
	inbox  string
}

func NewNotifySink(logger *zap.Logger, mailer *email.EmailService, inbox string) *NotifySink {
	return &NotifySink{
		logger: logger,
		mailer: mailer,
		inbox:  inbox,
	}
}

func (s *NotifySink) RecordPayment(notice models.PaymentNotice) error {
	s.logger.Info("payment completed",
		zap.String("session_id", notice.SessionID),
		zap.String("plan_id", notice.PlanID),
		zap.String("customer_email", notice.CustomerEmail),
	)

	if s.mailer == nil || s.inbox == "" {
		return nil
	}
	return s.mailer.SendPaymentNotification(notice, s.inbox)
}

func (s *NotifySink) RecordLead(lead models.Lead) error {
	s.logger.Info("new lead",
		zap.String("lead_id", lead.ID),
		zap.String("name", lead.Name),
		zap.String("email", lead.Email),
		zap.String("service", lead.Service),
		zap.String("budget", lead.Budget),
		zap.Int("message_length", len(lead.Message)),
	)

	if s.mailer == nil || s.inbox == "" {
		return nil
	}
	return s.mailer.SendLeadNotification(lead, s.inbox)
}
