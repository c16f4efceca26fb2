package entity

// ResolveRequest identifies the owner of the thread being resolved
type ResolveRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
