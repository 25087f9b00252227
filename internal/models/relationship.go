package models

import "fmt"

// RelationshipStatus defines the stored state of an edge between two users.
type RelationshipStatus string

const (
	RelationshipStatusPending  RelationshipStatus = "pending"
	RelationshipStatusAccepted RelationshipStatus = "accepted"
	RelationshipStatusBlocked  RelationshipStatus = "blocked"
)

// DirectionalStatus is the caller-relative view of a relationship, derived
// from the stored status plus the requester identity.
type DirectionalStatus string

const (
	DirectionalStatusNone            DirectionalStatus = "none"
	DirectionalStatusPendingSent     DirectionalStatus = "pending_sent"
	DirectionalStatusPendingReceived DirectionalStatus = "pending_received"
	DirectionalStatusAccepted        DirectionalStatus = "accepted"
	DirectionalStatusBlocked         DirectionalStatus = "blocked"
)

// Relationship is a directed edge between two users: the requester sent a
// friend request to (or blocked) the recipient. Lookups treat the pair as
// unordered; PairKey makes that uniqueness hold at the store so two
// concurrent requests for the same pair cannot both insert.
type Relationship struct {
	BaseModel
	RequesterID uint               `gorm:"not null;index" json:"requesterId"`
	RecipientID uint               `gorm:"not null;index" json:"recipientId"`
	Status      RelationshipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// PairKey is the canonical "min:max" encoding of the two user IDs.
	// It is set explicitly by the repository before insert.
	PairKey string `gorm:"type:varchar(50);uniqueIndex;not null" json:"-"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName specifies the table name for the Relationship model.
func (Relationship) TableName() string {
	return "relationships"
}

// SetPairKey computes the canonical unordered-pair key for the edge.
func (r *Relationship) SetPairKey() {
	r.PairKey = PairKeyFor(r.RequesterID, r.RecipientID)
}

// PairKeyFor returns the canonical pair key for two user IDs, smaller first.
func PairKeyFor(userID1, userID2 uint) string {
	if userID1 > userID2 {
		userID1, userID2 = userID2, userID1
	}
	return fmt.Sprintf("%d:%d", userID1, userID2)
}

// CounterpartID returns the ID of the user on the other side of the edge.
func (r *Relationship) CounterpartID(userID uint) uint {
	if r.RequesterID == userID {
		return r.RecipientID
	}
	return r.RequesterID
}

// StatusFor returns the direction-aware status label as seen by viewerID.
func (r *Relationship) StatusFor(viewerID uint) DirectionalStatus {
	switch r.Status {
	case RelationshipStatusAccepted:
		return DirectionalStatusAccepted
	case RelationshipStatusBlocked:
		return DirectionalStatusBlocked
	case RelationshipStatusPending:
		if r.RequesterID == viewerID {
			return DirectionalStatusPendingSent
		}
		return DirectionalStatusPendingReceived
	}
	return DirectionalStatusNone
}
