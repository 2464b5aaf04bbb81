package notify

import (
	"context"
	"encoding/json"

	errs "github.com/kihana2077/countdown/internal/errors"
	"github.com/kihana2077/countdown/internal/model"
)

// WebhookNotifier posts notifications as JSON to a configured endpoint.
// The receiving side (a chat bridge, for instance) is responsible for
// routing the message to the owner.
type WebhookNotifier struct {
	url    string
	client *HTTPClient
}

// NewWebhookNotifier creates a webhook notifier for the given URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: NewHTTPClient(),
	}
}

// webhookPayload is the JSON body posted to the endpoint.
type webhookPayload struct {
	OwnerKey  string            `json:"owner_key"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// Notify posts the notification. Transport failures surface as
// ErrDeliveryFailed after the client's retry schedule is exhausted.
func (w *WebhookNotifier) Notify(ctx context.Context, n *model.Notification) error {
	payload := webhookPayload{
		OwnerKey:  n.OwnerKey,
		Title:     n.Title,
		Message:   n.Message,
		Fields:    n.Fields,
		Timestamp: n.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := w.client.Post(ctx, w.url, body); err != nil {
		return errs.Wrap(errs.ErrDeliveryFailed, err.Error())
	}
	return nil
}
