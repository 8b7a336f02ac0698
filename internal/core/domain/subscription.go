package domain

import "time"

// SubscriptionStatus mirrors the numeric status stored on payment records.
type SubscriptionStatus int

const (
	SubscriptionActive  SubscriptionStatus = 1
	SubscriptionExpired SubscriptionStatus = 2
)

// Subscription is a paid plan with an expiry date. Only the expiry sweep mutates it.
type Subscription struct {
	ID         string             `json:"_id" bson:"_id"`
	UserID     string             `json:"userId" bson:"user_id"`
	Plan       string             `json:"type" bson:"type"`
	Status     SubscriptionStatus `json:"status" bson:"status"`
	ExpiryDate time.Time          `json:"expiryDate" bson:"expiry_date"`
}
