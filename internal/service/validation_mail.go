package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends account validation mails. It's an interface so handlers can
// be tested without an SMTP server.
type Mailer interface {
	SendValidationMail(token, sendTo string) error
}

type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

// SendValidationMail delivers the validation link for a pending account.
// The link embeds the one-time token and expires with it.
func (s *SMTPMailer) SendValidationMail(token, sendTo string) error {
	from := viper.GetString("mail.from")
	if sendTo == from {
		return fmt.Errorf("invalid email address")
	}

	var scheme string
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	} else {
		scheme = "http"
	}

	validationLink := fmt.Sprintf("%v://%v/validate/%v", scheme, viper.GetString("host.domain"), token)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Validate your account to start chatting")
	m.SetBody("text/html", fmt.Sprintf("<p>Thanks for registering!</p><p>Click <a href='%v'>here</a> to validate your account.</p><p>This link will expire in 30 minutes.</p>", validationLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		viper.GetString("mail.user"),
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
