package notification

import (
	"bytes"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/kabz8/Nextcare/internal/model"
)

// Mailer composes appointment confirmation emails and hands them to a gomail.Sender.
type Mailer struct {
	from       string
	clinicName string
	sender     gomail.Sender
}

// NewMailer returns a Mailer. A nil sender falls back to LogSender.
func NewMailer(from, clinicName string, sender gomail.Sender) *Mailer {
	if sender == nil {
		sender = LogSender()
	}
	return &Mailer{
		from:       from,
		clinicName: clinicName,
		sender:     sender,
	}
}

// LogSender writes messages to the log instead of an SMTP server.
func LogSender() gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		var buf bytes.Buffer
		if _, err := msg.WriteTo(&buf); err != nil {
			return fmt.Errorf("failed to render message: %w", err)
		}
		log.Info().
			Str("from", from).
			Strs("to", to).
			Int("bytes", buf.Len()).
			Msg("confirmation email written to log")
		return nil
	}
}

func (m *Mailer) Compose(apt *model.Appointment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.from, m.clinicName))
	msg.SetAddressHeader("To", apt.Email, apt.PatientName+" "+apt.PatientLastName)
	msg.SetHeader("Subject", fmt.Sprintf("Your %s appointment is confirmed", m.clinicName))
	msg.SetBody("text/plain", ConfirmationText(apt, m.clinicName))
	return msg
}

func (m *Mailer) Send(apt *model.Appointment) error {
	if err := gomail.Send(m.sender, m.Compose(apt)); err != nil {
		return fmt.Errorf("failed to send confirmation to %s: %w", apt.Email, err)
	}
	return nil
}

// ConfirmationText is the plain text notice a patient receives after booking.
func ConfirmationText(apt *model.Appointment, clinicName string) string {
	return fmt.Sprintf("Your appointment for %s at %s has been confirmed. Thank you for choosing %s!",
		apt.AppointmentDate, apt.AppointmentTime, clinicName)
}
