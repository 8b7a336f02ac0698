package domain

import "time"

// GalleryPageSize is the page size of the gallery listing.
const GalleryPageSize = 10

type GalleryImage struct {
	ID        string    `json:"_id" bson:"_id"`
	Image     string    `json:"image" bson:"image"`
	Type      string    `json:"type" bson:"type"`
	Alt       string    `json:"alt,omitempty" bson:"alt,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type ContactMessage struct {
	ID        string    `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"mobile" bson:"mobile"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
