package model

import "time"

// Certificate is a conformity declaration optionally attached to an order.
// Its lifecycle is independent from the order it decorates.
type Certificate struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"commandeId"`
	Manufacturer string    `json:"fabricant"`
	DeviceType   string    `json:"typeAppareil"`
	Anchor       string    `json:"ancrage,omitempty"`
	Material     string    `json:"materiau,omitempty"`
	Activation   string    `json:"activation,omitempty"`
	Technician   string    `json:"technicien"`
	DeclaredAt   time.Time `json:"dateDeclaration"`
}
