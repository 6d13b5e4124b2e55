package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("mail is not configured")

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Endpoint is one SMTP server to try. Port 465 speaks implicit TLS, every
// other port must offer STARTTLS.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) SSL() bool {
	return e.Port == 465
}

func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ParseEndpoints parses "host:port,host:port". Entries without a port use
// defaultPort.
func ParseEndpoints(list string, defaultPort int) ([]Endpoint, error) {
	var out []Endpoint
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		host, portStr, err := net.SplitHostPort(raw)
		if err != nil {
			out = append(out, Endpoint{Host: raw, Port: defaultPort})
			continue
		}

		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("invalid smtp port in %q", raw)
		}
		out = append(out, Endpoint{Host: host, Port: port})
	}
	return out, nil
}

type MailerConfig struct {
	Endpoints []Endpoint
	Username  string
	Password  string
	FromName  string
	FromAddr  string
	Timeout   time.Duration
}

// Mailer sends through the first endpoint that accepts the message.
type Mailer struct {
	cfg  MailerConfig
	log  *zap.Logger
	send func(ctx context.Context, ep Endpoint, msg *mail.Msg) error
}

func NewMailer(cfg MailerConfig, log *zap.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.FromAddr == "" {
		cfg.FromAddr = cfg.Username
	}

	m := &Mailer{cfg: cfg, log: log}
	m.send = m.dialAndSend
	return m
}

func (m *Mailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != "" && len(m.cfg.Endpoints) > 0
}

func (m *Mailer) dialAndSend(ctx context.Context, ep Endpoint, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(ep.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(m.cfg.Timeout),
	}
	if ep.SSL() {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	c, err := mail.NewClient(ep.Host, opts...)
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) build(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.FromFormat(m.cfg.FromName, m.cfg.FromAddr); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	out.Subject(msg.Subject)

	text := msg.Text
	if text == "" {
		text = msg.Subject
	}
	out.SetBodyString(mail.TypeTextPlain, text)
	if msg.HTML != "" {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return out, nil
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() || msg.To == "" {
		return ErrNotConfigured
	}

	var errs []error
	for _, ep := range m.cfg.Endpoints {
		// a go-mail Msg is single use once written
		built, err := m.build(msg)
		if err != nil {
			return err
		}

		if err := m.send(ctx, ep, built); err != nil {
			m.log.Warn("smtp endpoint failed",
				zap.String("endpoint", ep.String()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", ep, err))
			continue
		}

		m.log.Info("mail sent",
			zap.String("endpoint", ep.String()),
			zap.String("subject", msg.Subject),
		)
		return nil
	}

	return fmt.Errorf("all smtp endpoints failed: %w", errors.Join(errs...))
}

var _ Sender = (*Mailer)(nil)
