// mqtt.go - Publishes catalog change events to an MQTT broker
//
// Topics are "<prefix>/<entity>/<action>", e.g. "catalog/products/created".
// Payloads are the JSON-encoded catalog.Event.

package mqtt // Declares the package name

import ( // Import required packages
	"context"       // Publish deadlines
	"encoding/json" // Event payloads
	"fmt"           // Error wrapping
	"strings"       // Topic building
	"time"          // Connect timeout

	paho "github.com/eclipse/paho.mqtt.golang" // MQTT client

	"go-catalog-backend/catalog" // Event types
	"go-catalog-backend/logger"  // Structured logging
)

// Options - Broker connection settings
type Options struct {
	Broker      string        // e.g. tcp://localhost:1883
	ClientID    string        // Unique per connection
	TopicPrefix string        // Leading topic segment
	Timeout     time.Duration // Connect timeout
}

// publisher is the part of paho.Client we use
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Publisher - Implements catalog.Publisher on top of a paho client
type Publisher struct {
	client publisher
	prefix string
	qos    byte
}

// Connect - Dials the broker and returns a ready Publisher
func Connect(opts Options) (*Publisher, paho.Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	clientOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(opts.Timeout).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warn("mqtt connection lost", "err", err)
		}).
		SetOnConnectHandler(func(paho.Client) {
			logger.Info("mqtt connected", "broker", opts.Broker)
		})

	client := paho.NewClient(clientOpts)
	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) { // Broker did not answer in time
		return nil, nil, fmt.Errorf("mqtt connect to %s: timed out", opts.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, nil, fmt.Errorf("mqtt connect to %s: %w", opts.Broker, err)
	}
	return NewPublisher(client, opts.TopicPrefix), client, nil
}

// NewPublisher - Wraps an already connected client
func NewPublisher(client publisher, prefix string) *Publisher {
	return &Publisher{client: client, prefix: strings.Trim(prefix, "/"), qos: 1}
}

// Topic - Maps an event type to its topic
func (p *Publisher) Topic(t catalog.EventType) string {
	topic := strings.ReplaceAll(string(t), ".", "/")
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "/" + topic
}

// Publish - Sends ev and waits for the broker ack or ctx cancellation
func (p *Publisher) Publish(ctx context.Context, ev catalog.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.Topic(ev.Type), p.qos, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
