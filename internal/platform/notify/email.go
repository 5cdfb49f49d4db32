package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

const sendAttempts = 3

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
	// If true, skip TLS certificate verification (useful for local dev like MailHog).
	InsecureSkipVerify bool
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, InsecureSkipVerify: false}
}

// Send delivers a multipart plain+HTML message, retrying transient
// failures with a linear backoff. Callers that already committed a state
// change should log the returned error instead of failing the request.
func (m *Mailer) Send(ctx context.Context, to, subject, text, html string) error {
	var err error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		if err = m.send(ctx, to, subject, text, html); err == nil {
			return nil
		}
		log.Printf("mail: attempt %d to %s failed: %v", attempt, to, err)
		if attempt < sendAttempts {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

// send pushes one message through net/smtp. Works with MailHog (no auth)
// and regular servers (PlainAuth + STARTTLS).
func (m *Mailer) send(ctx context.Context, to, subject, text, html string) error {
	boundary := "hoob-alt-" + strconv.FormatInt(time.Now().UnixNano(), 16)

	headers := []string{
		"From: HOOB <" + m.from + ">",
		"To: " + to,
		"Subject: " + encodeRFC2047(subject),
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="` + boundary + `"`,
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(headers, "\r\n"))
	sb.WriteString("\r\n\r\n")
	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	sb.WriteString(text)
	sb.WriteString("\r\n--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	sb.WriteString(html)
	sb.WriteString("\r\n--" + boundary + "--\r\n")

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}
	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Quit(); err != nil {
			log.Printf("mail: smtp quit: %v", err)
		}
	}()

	if err := c.Hello("localhost"); err != nil {
		return err
	}

	if ok, _ := c.Extension("STARTTLS"); ok {
		cfg := &tls.Config{
			ServerName:         m.host,
			InsecureSkipVerify: m.InsecureSkipVerify,
		}
		// StartTLS re-sends EHLO itself, so the extension list already
		// reflects the TLS session when it returns
		if err := c.StartTLS(cfg); err != nil {
			return err
		}
	}

	if auth != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(m.from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(sb.String())); err != nil {
		return err
	}
	return w.Close()
}

// Subject Q-encoding per RFC 2047.
func encodeRFC2047(s string) string {
	return fmt.Sprintf("=?UTF-8?Q?%s?=", qEncode(s))
}

func qEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == ' ' {
			if c == ' ' {
				b.WriteByte('_')
			} else {
				b.WriteByte(c)
			}
		} else {
			b.WriteString(fmt.Sprintf("=%02X", c))
		}
	}
	return b.String()
}
