package dto

// SeenRequest toggles an order's read flag.
type SeenRequest struct {
	Seen bool `json:"vu"`
}

// CommentRequest replaces an order's free-text comment.
type CommentRequest struct {
	Comment string `json:"commentaire"`
}

// StatusRequest moves an order to a new lifecycle status.
type StatusRequest struct {
	Status string `json:"statut" binding:"required"`
}
