package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"posadmin/internal/config"
	auth "posadmin/internal/usecase/auth_usecase"
)

// SMTPMailerはプレーンテキストのメールをSMTPで送る。
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: from,
	}
}

func (m *SMTPMailer) Send(to string, subject string, body string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	authn := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(addr, authn, m.from, []string{to}, msg)
}

// LogMailerはSMTP未設定の開発環境向け。送らずにログへ落とす。
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) Send(to string, subject string, body string) error {
	log.Printf("mailer(dev): to=%s subject=%q\n%s", to, subject, body)
	return nil
}

// SMTP設定があれば本物を、無ければログ版を返す。
func FromConfig(cfg config.Config) auth.Mailer {
	if cfg.SMTPHost == "" {
		return NewLogMailer()
	}
	return NewSMTPMailer(cfg)
}
