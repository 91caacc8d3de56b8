package domain

import "time"

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// FriendRequest modela una arista dirigida de solicitud de amistad.
// Una vez aceptada, la relación se trata como simétrica.
type FriendRequest struct {
	ID        string              `json:"id"`
	FromID    string              `json:"fromId"`
	ToID      string              `json:"toId"`
	Status    FriendRequestStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
