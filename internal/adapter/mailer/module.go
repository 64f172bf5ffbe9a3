package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/config"
)

// Module exposes the mail sender implementation to the fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	return NewHTTPSender(p.Config.MailerEndpoint, p.Logger)
}
