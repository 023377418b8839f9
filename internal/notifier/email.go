package notifier

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailNotifier sends staff alerts through AWS SESv2.
type EmailNotifier struct {
	sesClient *sesv2.Client
	fromEmail string
	toEmail   string
}

// NewEmailNotifier builds the SES notifier from the environment. Returns nil
// when SES_FROM_EMAIL or NOTIFY_EMAIL is unset so callers can fall back to Noop.
func NewEmailNotifier(ctx context.Context) (*EmailNotifier, error) {
	from := os.Getenv("SES_FROM_EMAIL")
	to := os.Getenv("NOTIFY_EMAIL")
	if from == "" || to == "" {
		return nil, nil
	}
	region := os.Getenv("SES_AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "eu-central-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &EmailNotifier{
		sesClient: sesv2.NewFromConfig(cfg),
		fromEmail: from,
		toEmail:   to,
	}, nil
}

func (e *EmailNotifier) sendEmail(subject, htmlBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{e.toEmail}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(htmlBody)}},
			},
		},
	}
	if _, err := e.sesClient.SendEmail(context.Background(), input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (e *EmailNotifier) InquiryReceived(n InquiryNotification) error {
	subject := fmt.Sprintf("New inquiry: %s", n.PropertyName)
	if n.PropertyName == "" {
		subject = "New website inquiry"
	}
	body := fmt.Sprintf(`
<h2>New inquiry #%d</h2>
<table>
<tr><td>Name</td><td>%s</td></tr>
<tr><td>Email</td><td>%s</td></tr>
<tr><td>Phone</td><td>%s</td></tr>
<tr><td>Listing</td><td>%s (%s)</td></tr>
<tr><td>Dates</td><td>%s &rarr; %s</td></tr>
<tr><td>Guests</td><td>%d</td></tr>
</table>
<p>%s</p>`,
		n.InquiryID, n.FullName, n.Email, n.Phone,
		n.PropertyName, n.PropertySlug, n.CheckIn, n.CheckOut, n.Guests, n.Message)
	return e.sendEmail(subject, body)
}

func (e *EmailNotifier) TaskReassigned(n TaskNotification) error {
	subject := fmt.Sprintf("Task assigned to %s: %s", n.AssignedTo, n.Title)
	body := fmt.Sprintf(`
<h2>Task #%d reassigned</h2>
<p><b>%s</b> (priority: %s)</p>
<p>Now with: %s</p>
<p>Next step: %s</p>`,
		n.TaskID, n.Title, n.Priority, n.AssignedTo, n.NextStep)
	return e.sendEmail(subject, body)
}
