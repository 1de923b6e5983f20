package httpserver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/infinityconsultancy/enquiry/pkg/httpserver"
)

func TestConfig_ListenAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      httpserver.Config
		expected string
	}{
		{"addr only", httpserver.Config{Addr: ":5000"}, ":5000"},
		{"port overrides", httpserver.Config{Addr: ":5000", Port: "8080"}, ":8080"},
		{"port keeps host", httpserver.Config{Addr: "127.0.0.1:5000", Port: "9000"}, "127.0.0.1:9000"},
		{"port with empty addr", httpserver.Config{Port: "3000"}, ":3000"},
		{"blank port ignored", httpserver.Config{Addr: ":5000", Port: "  "}, ":5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.cfg.ListenAddr())
		})
	}
}
