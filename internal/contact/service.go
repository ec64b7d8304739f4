package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// SuccessMessage is returned to the form after a successful submission.
const SuccessMessage = "Your inquiry has been sent. We will get back to you soon."

// Message is an outgoing inquiry email.
type Message struct {
	ID          string
	To          string
	ReplyTo     string
	Subject     string
	Body        string
	Attachments []Attachment
	SentAt      time.Time
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Receipt confirms an accepted submission.
type Receipt struct {
	MessageID string
	Message   string
}

// Service turns submissions into messages for the studio inbox.
type Service struct {
	mailer Mailer
	inbox  string
	newID  func() string
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithIDGenerator overrides message id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService constructs a Service delivering to inbox.
func NewService(mailer Mailer, inbox string, opts ...Option) *Service {
	s := &Service{
		mailer: mailer,
		inbox:  strings.TrimSpace(inbox),
		newID:  func() string { return ulid.Make().String() },
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the submission and sends it. Validation failures are
// returned as *ValidationError.
func (s *Service) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	if err := sub.Validate(); err != nil {
		return Receipt{}, err
	}
	if s.mailer == nil {
		return Receipt{}, fmt.Errorf("contact: mailer not configured")
	}

	msg := Message{
		ID:      s.newID(),
		To:      s.inbox,
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("[Inquiry] %s / %s", sub.ProjectType, sub.CompanyOrName),
		Body:    composeBody(sub),
		SentAt:  s.now().UTC(),
	}
	if sub.Reference != nil {
		msg.Attachments = []Attachment{*sub.Reference}
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return Receipt{}, fmt.Errorf("contact: send message: %w", err)
	}
	return Receipt{MessageID: msg.ID, Message: SuccessMessage}, nil
}

func composeBody(sub Submission) string {
	var b strings.Builder
	rows := []struct {
		label string
		value string
	}{
		{"Company / Name", sub.CompanyOrName},
		{"Contact", sub.Contact},
		{"Email", sub.Email},
		{"Project type", sub.ProjectType},
		{"Budget", sub.Budget},
		{"Start date", sub.StartDate},
		{"End date", sub.EndDate},
	}
	for _, row := range rows {
		value := row.value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s: %s\n", row.label, value)
	}
	if sub.Reference != nil {
		fmt.Fprintf(&b, "Reference: %s (%d bytes)\n", sub.Reference.Filename, sub.Reference.Size())
	}
	b.WriteString("\n")
	b.WriteString(sub.Content)
	return b.String()
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer returns a LogMailer logging under the "contact" name.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger.Named("contact")}
}

// Send logs the message envelope.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	fields := []zap.Field{
		zap.String("message_id", msg.ID),
		zap.String("to", msg.To),
		zap.String("reply_to", msg.ReplyTo),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
		zap.Time("sent_at", msg.SentAt),
	}
	for _, a := range msg.Attachments {
		fields = append(fields, zap.String("attachment", a.Filename), zap.Int("attachment_bytes", a.Size()))
	}
	m.logger.Info("inquiry queued", fields...)
	return nil
}
