// Package notify delivers order notification emails and records delivery on
// the backend.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mysmilelab/labsync/internal/adapter/mailer"
	"github.com/mysmilelab/labsync/internal/domain/model"
	"github.com/mysmilelab/labsync/internal/metrics"
)

const dateLayout = "02/01/2006"

// Backend is the subset of the backend client the dispatcher needs.
type Backend interface {
	MarkNotified(ctx context.Context, orderID int64) error
	MarkNewOrderNotified(ctx context.Context, orderID int64) error
}

// Dispatcher sends templated notifications through the mail relay. An order
// is marked notified on the backend only after the relay accepted the email,
// so a failed send keeps the order eligible for the next cycle.
type Dispatcher struct {
	mail    mailer.Sender
	backend Backend
	cabinet mailer.Identity
	alert   mailer.Identity
	logger  *slog.Logger
}

// NewDispatcher builds a dispatcher with the two mail identities: one for
// cabinet-facing notifications, one for internal new-order alerts.
func NewDispatcher(mail mailer.Sender, backend Backend, cabinet, alert mailer.Identity, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		mail:    mail,
		backend: backend,
		cabinet: cabinet,
		alert:   alert,
		logger:  logger,
	}
}

// DispatchNewOrderAlert emails the internal new-order alert for one order,
// then persists the commande-notification flag.
func (d *Dispatcher) DispatchNewOrderAlert(ctx context.Context, o model.Order) error {
	if err := d.mail.Send(ctx, d.alert, alertParams(o)); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("alert").Inc()
		return fmt.Errorf("send new order alert: %w", err)
	}

	if err := d.backend.MarkNewOrderNotified(ctx, o.ID); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("alert").Inc()
		return fmt.Errorf("mark new order notified: %w", err)
	}

	metrics.NotificationsSentTotal.WithLabelValues("alert").Inc()
	d.logger.Info("new order alert sent",
		slog.String("externalId", o.ExternalID),
		slog.String("platform", string(o.Platform)),
	)
	return nil
}

// NotifyCabinet emails the cabinet attached to an order about its progress,
// then persists the general notification flag.
func (d *Dispatcher) NotifyCabinet(ctx context.Context, o model.Order) error {
	if o.CabinetEmail == "" {
		return fmt.Errorf("order %d has no cabinet email", o.ID)
	}

	if err := d.mail.Send(ctx, d.cabinet, cabinetParams(o)); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("cabinet").Inc()
		return fmt.Errorf("send cabinet notification: %w", err)
	}

	if err := d.backend.MarkNotified(ctx, o.ID); err != nil {
		metrics.NotificationsFailedTotal.WithLabelValues("cabinet").Inc()
		return fmt.Errorf("mark notified: %w", err)
	}

	metrics.NotificationsSentTotal.WithLabelValues("cabinet").Inc()
	d.logger.Info("cabinet notification sent",
		slog.Int64("orderId", o.ID),
		slog.String("cabinet", o.CabinetName),
	)
	return nil
}

func alertParams(o model.Order) map[string]string {
	return map[string]string{
		"reference":      o.ExternalID,
		"patient":        o.PatientRef,
		"cabinet":        o.CabinetName,
		"plateforme":     string(o.Platform),
		"type_appareil":  o.DeviceType,
		"date_reception": formatDate(&o.ReceivedAt),
		"date_echeance":  formatDate(o.DueAt),
		"statut":         o.Status.Label(),
		"commentaire":    o.Comment,
	}
}

func cabinetParams(o model.Order) map[string]string {
	return map[string]string{
		"to_email":       o.CabinetEmail,
		"cabinet":        o.CabinetName,
		"reference":      o.ExternalID,
		"patient":        o.PatientRef,
		"type_appareil":  o.DeviceType,
		"date_reception": formatDate(&o.ReceivedAt),
		"date_echeance":  formatDate(o.DueAt),
		"statut":         o.Status.Label(),
	}
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}
