// events.go - Change notifications emitted after a catalog write commits

package catalog // Declares the package name

import ( // Import required packages
	"context"                   // Publish deadlines
	"go-catalog-backend/models" // Event payloads
	"time"                      // Event timestamps
)

// EventType names a catalog change.
type EventType string

const (
	CategoryCreated EventType = "categories.created"
	ProductCreated  EventType = "products.created"
	ProductUpdated  EventType = "products.updated"
	ProductDeleted  EventType = "products.deleted"
	PriceChanged    EventType = "products.price_changed"
)

// Event describes a committed catalog change.
type Event struct {
	Type     EventType        `json:"type"`
	Key      string           `json:"key"` // product id or category name
	Product  *models.Product  `json:"product,omitempty"`
	Category *models.Category `json:"category,omitempty"`
	At       time.Time        `json:"at"`
}

// Publisher delivers catalog events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// nopPublisher is used when no broker is configured
type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
