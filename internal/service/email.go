package service

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"outdoor-rental-backend/internal/config"
	"outdoor-rental-backend/internal/logger"
)

// NewEmailService selects the mail backend from configuration.
func NewEmailService(cfg config.EmailConfig, company config.CompanyConfig) (EmailService, error) {
	switch cfg.Backend {
	case "smtp":
		return newSMTPEmailService(cfg, company), nil
	case "sendgrid":
		return newSendGridEmailService(cfg, company), nil
	default:
		return nil, fmt.Errorf("unknown email backend: %q", cfg.Backend)
	}
}

type smtpEmailService struct {
	dialer  *gomail.Dialer
	from    string
	company config.CompanyConfig
}

func newSMTPEmailService(cfg config.EmailConfig, company config.CompanyConfig) *smtpEmailService {
	return &smtpEmailService{
		dialer:  gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:    cfg.From,
		company: company,
	}
}

func (s *smtpEmailService) SendContractEmail(ctx context.Context, to, customerName, orderNumber string, contractPDF []byte) error {
	subject := fmt.Sprintf("Rental confirmation %s", orderNumber)
	body := contractEmailBody(customerName, orderNumber, s.company)
	return s.send(ctx, to, subject, body, orderNumber, contractPDF)
}

func (s *smtpEmailService) SendOwnerNotification(ctx context.Context, customerName, customerEmail, orderNumber string, contractPDF []byte) error {
	subject := fmt.Sprintf("New order %s", orderNumber)
	body := ownerEmailBody(customerName, customerEmail, orderNumber)
	return s.send(ctx, s.company.OwnerEmail, subject, body, orderNumber, contractPDF)
}

func (s *smtpEmailService) SendReturnReminder(ctx context.Context, to, customerName, orderNumber, dateTo string) error {
	subject := fmt.Sprintf("Return reminder for order %s", orderNumber)
	body := reminderEmailBody(customerName, orderNumber, dateTo, s.company)
	return s.send(ctx, to, subject, body, "", nil)
}

func (s *smtpEmailService) send(ctx context.Context, to, subject, body, orderNumber string, attachment []byte) error {
	logger.ExternalServiceCall("smtp", "send", "to", to, "subject", subject)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if len(attachment) > 0 {
		name := fmt.Sprintf("contract-%s.pdf", orderNumber)
		m.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		logger.ExternalServiceResult("smtp", "send", err, "to", to)
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	logger.ExternalServiceResult("smtp", "send", nil, "to", to)
	return nil
}

func contractEmailBody(customerName, orderNumber string, company config.CompanyConfig) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"thank you for your reservation. Your order number is %s.\n"+
			"The rental agreement with payment details is attached.\n\n"+
			"Please bring the signed agreement when picking up the equipment.\n\n"+
			"%s\n%s | %s\n%s\n",
		customerName, orderNumber,
		company.Name, company.Phone, company.Email, company.Web)
}

func ownerEmailBody(customerName, customerEmail, orderNumber string) string {
	return fmt.Sprintf(
		"New order %s.\n\n"+
			"Customer: %s <%s>\n"+
			"The rental agreement is attached.\n",
		orderNumber, customerName, customerEmail)
}

func reminderEmailBody(customerName, orderNumber, dateTo string, company config.CompanyConfig) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"this is a reminder that your rental (order %s) ends on %s.\n"+
			"Please return the equipment on time.\n\n"+
			"%s\n%s | %s\n",
		customerName, orderNumber, dateTo,
		company.Name, company.Phone, company.Email)
}
