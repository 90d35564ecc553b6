package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
	"github.com/Beliver-247/sliit-choir-backend/pkg/logger"
)

// Message is a plain transactional email
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	TextBody  string
	HTMLBody  string
}

// Service sends transactional mail
type Service interface {
	Send(ctx context.Context, msg Message) error
}

// NewService builds a mail service from configuration. Unknown providers
// fall back to the console service so development never needs credentials.
func NewService(cfg *config.Config, log *logger.Logger) Service {
	switch cfg.Mail.Provider {
	case "sendgrid":
		return NewSendgridService(cfg.Mail.SendgridKey, cfg.Mail.FromName, cfg.Mail.FromAddress, log)
	default:
		return NewConsoleService(log)
	}
}

// ConsoleService logs mail instead of delivering it
type ConsoleService struct {
	log *logger.Logger
}

func NewConsoleService(log *logger.Logger) *ConsoleService {
	return &ConsoleService{log: log}
}

func (s *ConsoleService) Send(_ context.Context, msg Message) error {
	s.log.Info("mail (console)",
		zap.String("to", fmt.Sprintf("%s <%s>", msg.ToName, msg.ToAddress)),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.TextBody),
	)
	return nil
}
