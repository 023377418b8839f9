package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

// WebhookNotifier posts JSON alerts to a chat webhook (Slack-compatible
// incoming-webhook payload). Configured via NOTIFY_WEBHOOK_URL.
type WebhookNotifier struct {
	url string
}

func NewWebhookNotifier() *WebhookNotifier {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	if url == "" {
		return nil
	}
	return &WebhookNotifier{url: url}
}

func (wn *WebhookNotifier) post(text string) error {
	body, _ := json.Marshal(map[string]string{"text": text})
	resp, err := http.Post(wn.url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

func (wn *WebhookNotifier) InquiryReceived(n InquiryNotification) error {
	return wn.post(fmt.Sprintf("New inquiry #%d from %s <%s> for %s (%s - %s, %d guests)",
		n.InquiryID, n.FullName, n.Email, n.PropertyName, n.CheckIn, n.CheckOut, n.Guests))
}

func (wn *WebhookNotifier) TaskReassigned(n TaskNotification) error {
	return wn.post(fmt.Sprintf("Task #%d %q is now with %s (priority %s)",
		n.TaskID, n.Title, n.AssignedTo, n.Priority))
}

// Multi fans a notification out to several notifiers; the first failure is
// returned after all have been attempted.
type Multi []Notifier

func (m Multi) InquiryReceived(n InquiryNotification) error {
	var first error
	for _, target := range m {
		if err := target.InquiryReceived(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) TaskReassigned(n TaskNotification) error {
	var first error
	for _, target := range m {
		if err := target.TaskReassigned(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}
