// Package notifier is the outbound notification boundary. Every call here is
// best-effort: failures are returned so the caller can log them, but nothing
// in the request path waits on or fails because of a notification.
package notifier

// InquiryNotification carries the fields the staff alert needs; the inquiry
// row itself stays the system of record.
type InquiryNotification struct {
	InquiryID    uint
	FullName     string
	Email        string
	Phone        string
	PropertyName string
	PropertySlug string
	CheckIn      string
	CheckOut     string
	Guests       int
	Message      string
}

// TaskNotification announces a WIP task reassignment.
type TaskNotification struct {
	TaskID     uint
	Title      string
	NextStep   string
	Priority   string
	AssignedTo string
}

type Notifier interface {
	InquiryReceived(n InquiryNotification) error
	TaskReassigned(n TaskNotification) error
}

// Noop satisfies Notifier for tests and offline development.
type Noop struct{}

func (Noop) InquiryReceived(InquiryNotification) error { return nil }
func (Noop) TaskReassigned(TaskNotification) error     { return nil }
