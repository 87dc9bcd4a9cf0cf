package notify

import (
	"context"
	"log"
)

// Request is a structured notification: a message key plus parameters, never
// rendered text. Rendering and localization happen at the delivery edge.
type Request struct {
	Recipient  string         `json:"recipient"`
	CropID     uint           `json:"crop_id"`
	MessageKey string         `json:"message_key"`
	Params     map[string]any `json:"params,omitempty"`
}

// Notifier is the notification collaborator. Callers treat it as
// fire-and-forget: a delivery failure is logged, never propagated.
type Notifier interface {
	Notify(ctx context.Context, req Request) error
}

type logNotifier struct{}

// NewLogNotifier writes notifications to the process log. It is the fallback
// when no broker is configured.
func NewLogNotifier() Notifier { return &logNotifier{} }

func (n *logNotifier) Notify(_ context.Context, req Request) error {
	log.Printf("[notify] to=%s crop=%d key=%s params=%v", req.Recipient, req.CropID, req.MessageKey, req.Params)
	return nil
}
