package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/multiblog/internal/common"
	"golang.org/x/exp/rand"
)

const welcomeTemplate = "blog_created.html"

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, logger *slog.Logger) (*MailService, error) {
	tp, err := NewTemplate()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, tp),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
	}, nil
}

// SendWelcomeEmail consumes blog.created events and mails each new blog's owner until
// Close is called.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.BlogCreatedKey, common.BlogExchange, common.BlogCreatedQueue)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				s.handle(msg)
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendWelcomeEmail due to context cancellation")
				return
			}
		}
	}()

	return nil
}

// handle sends the welcome email for one event, retrying with exponential backoff
// and jitter. It reports whether the email went out.
func (s *MailService) handle(msg amqp.Delivery) bool {
	var event common.BlogCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		return false
	}

	data := welcomeData{Username: event.Username, Title: event.Title}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(event.Email, data, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", event.Email), slog.String("blog_id", event.BlogID))
			return true
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return false
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", event.Email), slog.String("blog_id", event.BlogID))
	return false
}

func (s *MailService) Close() {
	s.cancel()
}
