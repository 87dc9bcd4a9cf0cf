package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const defaultTopicTmpl = "cropcare/notify/{user}/{crop}"

// MQTTNotifier publishes notification requests as JSON to a broker topic.
// Delivery downstream (SMS gateway, app push) subscribes to the topic; this
// side only hands off message keys and parameters.
type MQTTNotifier struct {
	client    mqtt.Client
	topicTmpl string
}

// NewMQTTNotifier connects to the broker with exponential backoff so a slow
// broker start does not kill the process.
func NewMQTTNotifier(brokerURL, clientID, topicTmpl string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	client := mqtt.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	err := backoff.Retry(func() error {
		tok := client.Connect()
		tok.Wait()
		return tok.Error()
	}, bo)
	if err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", brokerURL, err)
	}

	if strings.TrimSpace(topicTmpl) == "" {
		topicTmpl = defaultTopicTmpl
	}
	return &MQTTNotifier{client: client, topicTmpl: topicTmpl}, nil
}

func (n *MQTTNotifier) Notify(_ context.Context, req Request) error {
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}
	topic := strings.NewReplacer(
		"{user}", req.Recipient,
		"{crop}", fmt.Sprint(req.CropID),
	).Replace(n.topicTmpl)

	tok := n.client.Publish(topic, 1, false, b)
	tok.Wait()
	return tok.Error()
}

func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
