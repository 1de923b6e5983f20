package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/binder"
)

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds string fields by tag", func(t *testing.T) {
		t.Parallel()

		form := url.Values{
			"firstName": {"Jane"},
			"lastName":  {"Doe"},
			"email":     {"jane@example.com"},
			"Internal":  {"ignored"},
			"count":     {"3"},
		}
		req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got enquiry
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, enquiry{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}, got)
	})

	t.Run("json content type is not applicable", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		var got enquiry
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrNotApplicable)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader("firstName=Jane"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.ErrorIs(t, binder.Form()(req, enquiry{}), binder.ErrFailedToParseForm)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()

		body := "firstName=" + strings.Repeat("a", binder.DefaultMaxFormSize)
		req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got enquiry
		err := binder.Form()(req, &got)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})
}
