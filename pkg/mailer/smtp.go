package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"
)

// SMTPConfig describes the relay the SMTPSender connects to.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS; otherwise STARTTLS is used when offered
	User     string
	Password string
}

// SMTPSender delivers messages over a single SMTP transaction per Send call.
// No connection pooling: enquiry volume is a handful of mails a day.
type SMTPSender struct {
	cfg         SMTPConfig
	dialTimeout time.Duration
}

// NewSMTPSender creates a sender for the given relay.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:         cfg,
		dialTimeout: 10 * time.Second,
	}
}

// Send validates, serializes and delivers the message. The context deadline,
// if any, bounds the whole SMTP transaction.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	raw, err := buildMIME(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	dialer := net.Dialer{Timeout: s.dialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSendFailed, addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.Secure {
		conn = tls.Client(conn, tlsConfig)
	}

	client := gosmtp.NewClient(conn)
	defer client.Close()

	if !s.cfg.Secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				return fmt.Errorf("%w: starttls: %v", ErrSendFailed, err)
			}
		}
	}

	if s.cfg.User != "" {
		auth := sasl.NewPlainClient("", s.cfg.User, s.cfg.Password)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSendFailed, err)
		}
	}

	if err := client.SendMail(msg.From, []string{msg.To}, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	return client.Quit()
}
