package controller

import (
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/alert"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/service"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/templates"
)

const MaxWebhookBody = 1 << 20

// Controller holds the handlers of the HTTP surface and what they depend on.
type Controller struct {
	Services *service.Services
	// Feed is nil when the feed alert sink is disabled.
	Feed *alert.Feed
	Page templates.Page
}

func New(services *service.Services, feed *alert.Feed, page templates.Page) *Controller {
	return &Controller{Services: services, Feed: feed, Page: page}
}
