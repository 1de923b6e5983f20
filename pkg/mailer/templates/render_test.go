package templates_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinityconsultancy/enquiry/pkg/mailer/templates"
)

func TestRender(t *testing.T) {
	t.Parallel()

	c := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString("<b>hi</b>")+"</p>")
		return err
	})

	out, err := templates.Render(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "<p>&lt;b&gt;hi&lt;/b&gt;</p>", out)
}

func TestRender_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

	out, err := templates.Render(context.Background(), c)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out)
}
