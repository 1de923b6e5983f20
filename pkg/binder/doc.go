// Package binder decodes HTTP request bodies into typed request structs.
//
// Binders share the signature func(r *http.Request, v any) error so they can
// be chained through handler.WithBinders. A binder whose content type does not
// match the request returns ErrNotApplicable and the chain moves on; when no
// binder applies the target keeps its zero value.
//
//	type EnquiryRequest struct {
//	    FirstName string `json:"firstName" form:"firstName"`
//	    Email     string `json:"email" form:"email"`
//	}
//
//	h := handler.Wrap(submit,
//	    handler.WithBinders(binder.JSON(), binder.Form()),
//	)
//
// # Available Binders
//
//   - JSON(): application/json bodies up to DefaultMaxJSONSize, a single
//     top-level object, unknown fields ignored.
//   - Form(): application/x-www-form-urlencoded bodies into string fields
//     tagged `form:"name"`.
//
// # Error Handling
//
//   - ErrNotApplicable: content type belongs to another binder
//   - ErrFailedToParseJSON: malformed, empty, oversized or non-object JSON
//   - ErrFailedToParseForm: malformed form body
//   - ErrBodyTooLarge: body exceeded the size limit (also wraps the parse error)
package binder
