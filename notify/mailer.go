package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"agency-site-server/config"
	"agency-site-server/logger"
	"agency-site-server/models"
)

// Sender is the part of gomail.Dialer the mailer uses
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer e-mails the site owner about new inquiries and reviews
type Mailer struct {
	sender Sender
	from   string
	to     string
	// async sends in the background so a slow SMTP server never holds a request
	async bool
}

// NewMailer builds a mailer over SMTP
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		to:     cfg.NotifyTo,
		async:  true,
	}
}

// NewMailerWithSender builds a synchronous mailer over any sender
func NewMailerWithSender(sender Sender, from, to string) *Mailer {
	return &Mailer{sender: sender, from: from, to: to}
}

func (m *Mailer) Notify(ctx context.Context, event Event) {
	subject, body, ok := render(event)
	if !ok {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	send := func() {
		if err := m.sender.DialAndSend(msg); err != nil {
			logger.Error().Err(err).Str("event", event.Type).Msg("Failed to send notification e-mail")
			return
		}
		logger.Debug().Str("event", event.Type).Str("to", m.to).Msg("Notification e-mail sent")
	}

	if m.async {
		go send()
		return
	}
	send()
}

// render turns an event into a plain-text e-mail; other events are skipped
func render(event Event) (subject, body string, ok bool) {
	switch event.Type {
	case InquiryCreated:
		inq, isInquiry := event.Data.(*models.Inquiry)
		if !isInquiry {
			return "", "", false
		}
		var b strings.Builder
		fmt.Fprintf(&b, "New inquiry from %s <%s>\n\n", inq.Name, inq.Email)
		fmt.Fprintf(&b, "Subject: %s\n\n%s\n", inq.Subject, inq.Message)
		return "New inquiry: " + inq.Subject, b.String(), true

	case ReviewSubmitted:
		review, isReview := event.Data.(*models.Review)
		if !isReview {
			return "", "", false
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s", review.Name)
		if review.Company != "" {
			fmt.Fprintf(&b, " (%s)", review.Company)
		}
		fmt.Fprintf(&b, " left a %d-star review waiting for moderation:\n\n%s\n", review.Rating, review.Content)
		return fmt.Sprintf("New %d-star review from %s", review.Rating, review.Name), b.String(), true
	}
	return "", "", false
}
