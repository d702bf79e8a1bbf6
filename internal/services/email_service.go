package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendProposalEmail(email, clientName, link string) error
	SendFirmOfferEmail(email, speakerName, link string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendProposalEmail(email, clientName, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your speaking engagement proposal")

	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Your proposal is ready for review.</p>
		<p><a href="%s">View your proposal</a></p>
		<p>The link is personal to you. Anyone with it can open the proposal,
		so please don't forward it.</p>
		<p>Best regards,<br>The Bureau Team</p>
	`, clientName, link)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send proposal email: %w", err)
	}
	return nil
}

func (s *emailService) SendFirmOfferEmail(email, speakerName, link string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Firm offer: please confirm your availability")

	body := fmt.Sprintf(`
		<h3>Hello %s,</h3>
		<p>We have a firm offer for you. Please review the engagement details
		and confirm or decline:</p>
		<p><a href="%s">Review the offer</a></p>
		<p>Best regards,<br>The Bureau Team</p>
	`, speakerName, link)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send firm offer email: %w", err)
	}
	return nil
}
