package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mysmilelab/labsync/internal/adapter/mailer"
	"github.com/mysmilelab/labsync/internal/domain/model"
	testhelpers "github.com/mysmilelab/labsync/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

var (
	cabinetIdentity = mailer.Identity{ServiceID: "svc-cab", TemplateID: "tpl-cab", UserID: "key-cab"}
	alertIdentity   = mailer.Identity{ServiceID: "svc-alert", TemplateID: "tpl-alert", UserID: "key-alert"}
)

func sampleOrder() model.Order {
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return model.Order{
		ID:           42,
		ExternalID:   "B2",
		PatientRef:   "PAT-7",
		CabinetName:  "Cabinet Durand",
		CabinetEmail: "durand@example.fr",
		Platform:     model.PlatformMeditLink,
		ReceivedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		DueAt:        &due,
		Status:       model.OrderStatusPending,
		DeviceType:   "Gouttière",
	}
}

func TestDispatchNewOrderAlertMarksAfterSend(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	backendStub := &testhelpers.BackendStub{}
	d := NewDispatcher(sender, backendStub, cabinetIdentity, alertIdentity, testLogger())

	if err := d.DispatchNewOrderAlert(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sender.Lock()
	if len(sender.Sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.Sent))
	}
	sent := sender.Sent[0]
	sender.Unlock()

	if sent.Identity != alertIdentity {
		t.Fatalf("expected alert identity, got %+v", sent.Identity)
	}
	if sent.Params["reference"] != "B2" {
		t.Fatalf("expected reference B2, got %q", sent.Params["reference"])
	}
	if sent.Params["date_reception"] != "01/03/2024" {
		t.Fatalf("unexpected reception date: %q", sent.Params["date_reception"])
	}
	if sent.Params["statut"] != "En attente" {
		t.Fatalf("unexpected status label: %q", sent.Params["statut"])
	}

	backendStub.Lock()
	defer backendStub.Unlock()
	if len(backendStub.MarkedNewNotified) != 1 || backendStub.MarkedNewNotified[0] != 42 {
		t.Fatalf("expected order 42 marked, got %v", backendStub.MarkedNewNotified)
	}
	if len(backendStub.MarkedNotified) != 0 {
		t.Fatal("general notification flag must not be touched by the alert path")
	}
}

func TestDispatchNewOrderAlertFailedSendDoesNotMark(t *testing.T) {
	sender := &testhelpers.SenderStub{
		SendFn: func(context.Context, mailer.Identity, map[string]string) error {
			return errors.New("relay down")
		},
	}
	backendStub := &testhelpers.BackendStub{}
	d := NewDispatcher(sender, backendStub, cabinetIdentity, alertIdentity, testLogger())

	if err := d.DispatchNewOrderAlert(context.Background(), sampleOrder()); err == nil {
		t.Fatal("expected error from failed send")
	}

	backendStub.Lock()
	defer backendStub.Unlock()
	if len(backendStub.MarkedNewNotified) != 0 {
		t.Fatalf("order must stay eligible after a failed email, marked: %v", backendStub.MarkedNewNotified)
	}
}

func TestNotifyCabinetUsesCabinetIdentity(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	backendStub := &testhelpers.BackendStub{}
	d := NewDispatcher(sender, backendStub, cabinetIdentity, alertIdentity, testLogger())

	if err := d.NotifyCabinet(context.Background(), sampleOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sender.Lock()
	if len(sender.Sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.Sent))
	}
	sent := sender.Sent[0]
	sender.Unlock()

	if sent.Identity != cabinetIdentity {
		t.Fatalf("expected cabinet identity, got %+v", sent.Identity)
	}
	if sent.Params["to_email"] != "durand@example.fr" {
		t.Fatalf("unexpected recipient: %q", sent.Params["to_email"])
	}

	backendStub.Lock()
	defer backendStub.Unlock()
	if len(backendStub.MarkedNotified) != 1 || backendStub.MarkedNotified[0] != 42 {
		t.Fatalf("expected order 42 marked notified, got %v", backendStub.MarkedNotified)
	}
}

func TestNotifyCabinetRequiresEmail(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	d := NewDispatcher(sender, &testhelpers.BackendStub{}, cabinetIdentity, alertIdentity, testLogger())

	order := sampleOrder()
	order.CabinetEmail = ""
	if err := d.NotifyCabinet(context.Background(), order); err == nil {
		t.Fatal("expected error for missing cabinet email")
	}

	sender.Lock()
	defer sender.Unlock()
	if len(sender.Sent) != 0 {
		t.Fatal("no email should be sent without a recipient")
	}
}
