package model

import "time"

// OrderStatus describes the production lifecycle of a commande.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "EN_ATTENTE"
	OrderStatusInProcess OrderStatus = "EN_COURS"
	OrderStatusDone      OrderStatus = "TERMINEE"
	OrderStatusShipped   OrderStatus = "EXPEDIEE"
	OrderStatusCancelled OrderStatus = "ANNULEE"
)

// statusLabels maps statuses to the display strings used in notifications.
var statusLabels = map[OrderStatus]string{
	OrderStatusPending:   "En attente",
	OrderStatusInProcess: "En cours",
	OrderStatusDone:      "Terminée",
	OrderStatusShipped:   "Expédiée",
	OrderStatusCancelled: "Annulée",
}

// Label returns the French display string for a status.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether the status is one of the known lifecycle values.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Order is a dental-device production order ("commande") ingested from an
// external platform. Orders are created server-side during a platform sync
// and mutated only through backend calls; they are never deleted here.
type Order struct {
	ID            int64       `json:"id"`
	ExternalID    string      `json:"externalId"`
	PatientRef    string      `json:"refPatient"`
	CabinetID     int64       `json:"cabinetId"`
	CabinetName   string      `json:"cabinetNom"`
	CabinetEmail  string      `json:"cabinetEmail,omitempty"`
	Platform      Platform    `json:"plateforme"`
	ReceivedAt    time.Time   `json:"dateReception"`
	DueAt         *time.Time  `json:"dateEcheance,omitempty"`
	Status        OrderStatus `json:"statut"`
	Seen          bool        `json:"vu"`
	Comment       string      `json:"commentaire,omitempty"`
	DeviceType    string      `json:"typeAppareil,omitempty"`
	UpperScanHash string      `json:"hashScanSuperieur,omitempty"`
	LowerScanHash string      `json:"hashScanInferieur,omitempty"`
	// Notified is the general cabinet-facing notification flag.
	Notified bool `json:"notification"`
	// NewOrderNotified is the internal "new order" alert flag. The two
	// flags are independent.
	NewOrderNotified bool `json:"commandeNotification"`
}
