package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"outdoor-rental-backend/internal/config"
	"outdoor-rental-backend/internal/logger"
)

type sendGridEmailService struct {
	client  *sendgrid.Client
	from    *mail.Email
	company config.CompanyConfig
}

func newSendGridEmailService(cfg config.EmailConfig, company config.CompanyConfig) *sendGridEmailService {
	return &sendGridEmailService{
		client:  sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:    mail.NewEmail(company.Name, cfg.From),
		company: company,
	}
}

func (s *sendGridEmailService) SendContractEmail(ctx context.Context, to, customerName, orderNumber string, contractPDF []byte) error {
	subject := fmt.Sprintf("Rental confirmation %s", orderNumber)
	body := contractEmailBody(customerName, orderNumber, s.company)
	return s.send(ctx, to, customerName, subject, body, orderNumber, contractPDF)
}

func (s *sendGridEmailService) SendOwnerNotification(ctx context.Context, customerName, customerEmail, orderNumber string, contractPDF []byte) error {
	subject := fmt.Sprintf("New order %s", orderNumber)
	body := ownerEmailBody(customerName, customerEmail, orderNumber)
	return s.send(ctx, s.company.OwnerEmail, "", subject, body, orderNumber, contractPDF)
}

func (s *sendGridEmailService) SendReturnReminder(ctx context.Context, to, customerName, orderNumber, dateTo string) error {
	subject := fmt.Sprintf("Return reminder for order %s", orderNumber)
	body := reminderEmailBody(customerName, orderNumber, dateTo, s.company)
	return s.send(ctx, to, customerName, subject, body, "", nil)
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, body, orderNumber string, attachment []byte) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)

	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail(toName, to), body, "")
	if len(attachment) > 0 {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(attachment))
		att.SetType("application/pdf")
		att.SetFilename(fmt.Sprintf("contract-%s.pdf", orderNumber))
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "to", to)
	return nil
}
