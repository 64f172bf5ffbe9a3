package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/mysmilelab/labsync/internal/adapter/backend"
	"github.com/mysmilelab/labsync/internal/adapter/mailer"
	"github.com/mysmilelab/labsync/internal/config"
)

// Module provides the notification dispatcher.
var Module = fx.Provide(newDispatcher)

type dispatcherParams struct {
	fx.In

	Mail    mailer.Sender
	Backend backend.Client
	Config  *config.Config
	Logger  *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	cabinet := mailer.Identity{
		ServiceID:  p.Config.CabinetMail.ServiceID,
		TemplateID: p.Config.CabinetMail.TemplateID,
		UserID:     p.Config.CabinetMail.UserID,
	}
	alert := mailer.Identity{
		ServiceID:  p.Config.AlertMail.ServiceID,
		TemplateID: p.Config.AlertMail.TemplateID,
		UserID:     p.Config.AlertMail.UserID,
	}
	return NewDispatcher(p.Mail, p.Backend, cabinet, alert, p.Logger)
}
