// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value already decoded by one
// or more binders, and returns a Response. Wrap turns it into an
// http.HandlerFunc. Binding and rendering failures go to an ErrorHandler,
// which by default writes the JSON envelope used by every endpoint:
//
//	{"success": false, "message": "Invalid request body."}
//
// Example:
//
//	submit := func(ctx handler.Context, req EnquiryRequest) handler.Response {
//		if err := svc.Submit(ctx, req); err != nil {
//			return handler.Fail(http.StatusInternalServerError, "Failed to send email.")
//		}
//		return handler.Success("Email sent successfully!")
//	}
//
//	r.Post("/send-email", handler.Wrap(submit,
//		handler.WithBinders(binder.JSON(), binder.Form()),
//		handler.WithErrorHandler(handler.NewErrorHandler(log)),
//	))
package handler
