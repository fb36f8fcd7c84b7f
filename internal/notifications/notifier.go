package notifications

import "context"

type SendContactReceivedInput struct {
	ContactID int
	Name      string
	Email     string
	Message   string
}

type Notifier interface {
	SendContactReceived(ctx context.Context, input SendContactReceivedInput) error
}
