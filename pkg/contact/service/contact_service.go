package service

import (
	"context"

	"agrismart/pkg/contact"
)

type ContactService interface {
	// Submit validates and stores the form, returning the message id.
	Submit(ctx context.Context, f contact.Form) (string, error)
}
