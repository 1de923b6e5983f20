package main

import (
	"errors"
	"log/slog"

	"github.com/infinityconsultancy/enquiry/pkg/environment"
	"github.com/infinityconsultancy/enquiry/pkg/logger"
	"github.com/infinityconsultancy/enquiry/pkg/mailer"
)

var errDevTransportInProduction = errors.New("MAIL_TRANSPORT=dev writes enquiries to disk and is not allowed in production")

// checkSender logs the selected transport and rejects the file-writing dev
// sender in production.
func checkSender(log *slog.Logger, env environment.Environment, sender mailer.Sender) error {
	dev, ok := sender.(*mailer.DevSender)
	if !ok {
		log.Info("mail transport ready", logger.Transport(mailer.NameOf(sender)))
		return nil
	}
	if env.IsProduction() {
		return errDevTransportInProduction
	}
	log.Info("mail transport ready, messages are written to disk",
		logger.Transport(mailer.NameOf(sender)),
		slog.String("dir", dev.Dir()),
	)
	return nil
}
