// Package mailer sends transactional email. Delivery is best effort:
// callers log failures and move on, a mail error never fails a request.
package mailer

import "log"

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Service interface {
	Send(msg Message) error
}

// New picks the SendGrid service when an API key is configured and falls
// back to the console service for local development.
func New(apiKey, fromName, fromEmail string) Service {
	if apiKey == "" {
		log.Println("mailer: no SENDGRID_API_KEY set, printing mail to console")
		return consoleService{}
	}
	return &sendgridService{key: apiKey, fromName: fromName, fromEmail: fromEmail}
}

type consoleService struct{}

func (consoleService) Send(msg Message) error {
	log.Printf("mail (console) to=%s subject=%q\n%s", msg.To, msg.Subject, msg.HTML)
	return nil
}
