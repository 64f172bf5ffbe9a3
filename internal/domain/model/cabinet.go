package model

// Cabinet is a client dental practice orders are produced for.
type Cabinet struct {
	ID         int64  `json:"id"`
	Name       string `json:"nom"`
	Email      string `json:"email"`
	Phone      string `json:"telephone,omitempty"`
	Address    string `json:"adresse,omitempty"`
	City       string `json:"ville,omitempty"`
	PostalCode string `json:"codePostal,omitempty"`
}
