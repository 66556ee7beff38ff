package http

import (
	"github.com/contact-api/internal/application/contact"
)

// Deps holds the application services the router exposes.
type Deps struct {
	Contact contact.Service
}
