package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PAYWATCH_TEST_DIR", "/srv/payments")

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "empty stays empty",
			path: "",
			want: "",
		},
		{
			name: "plain path unchanged",
			path: "/etc/paywatch/expected.json",
			want: "/etc/paywatch/expected.json",
		},
		{
			name: "tilde alone",
			path: "~",
			want: home,
		},
		{
			name: "tilde prefix",
			path: "~/expected.json",
			want: filepath.Join(home, "expected.json"),
		},
		{
			name: "environment variable",
			path: "$PAYWATCH_TEST_DIR/expected.json",
			want: "/srv/payments/expected.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
