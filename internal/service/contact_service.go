package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diegousa/website-backend/internal/models"
	"github.com/diegousa/website-backend/pkg/utils"
)

// LeadSink receives accepted contact-form submissions.
type LeadSink interface {
	RecordLead(lead models.Lead) error
}

type ContactService struct {
	sink      LeadSink
	validator *utils.Validator
	logger    *zap.Logger
}

func NewContactService(sink LeadSink, validator *utils.Validator, logger *zap.Logger) *ContactService {
	return &ContactService{
		sink:      sink,
		validator: validator,
		logger:    logger,
	}
}

// SubmitLead validates a submission and hands it to the sink. A filled
// honeypot field is accepted silently and never recorded, so bots get no
// signal that they were caught.
func (s *ContactService) SubmitLead(req models.ContactRequest) error {
	name := utils.SafeText(req.Name, 80)
	emailAddr := utils.SafeText(req.Email, 120)
	message := utils.SafeText(req.Message, 2000)
	budget := utils.SafeText(req.Budget, 60)
	serviceKind := utils.SafeText(req.Service, 60)
	honeypot := utils.SafeText(req.Company, 80)

	if honeypot != "" {
		s.logger.Info("honeypot tripped, submission discarded")
		return nil
	}

	if len(name) < 2 || len(message) < 10 {
		return NewValidationError("Please provide a valid name and message.")
	}
	if emailAddr != "" && !s.validator.IsEmail(emailAddr) {
		return NewValidationError("Invalid email.")
	}

	lead := models.Lead{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     emailAddr,
		Message:   message,
		Budget:    budget,
		Service:   serviceKind,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sink.RecordLead(lead); err != nil {
		s.logger.Error("lead sink failed", zap.String("lead_id", lead.ID), zap.Error(err))
		return err
	}

	return nil
}
