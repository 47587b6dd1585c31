package golang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/routekit/internal/model"
)

func TestGoStrings(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil slice", []string(nil), "nil"},
		{"strings", []string{"id", "post"}, `[]string{"id", "post"}`},
		{"methods", []model.Method{model.MethodGet, model.MethodHead}, `[]string{"GET", "HEAD"}`},
		{"escaped", []string{`a"b`}, `[]string{"a\"b"}`},
		{"unsupported", 42, "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GoStrings(tt.input))
		})
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, `"home"`, goStringAny("home"))
	require.Equal(t, `"GET"`, goStringAny(model.MethodGet))
	require.Equal(t, `""`, goStringAny(nil))
}

func TestFormat(t *testing.T) {
	src := []byte("package routes\nvar  X   = []string{\"a\",\"b\"}\n")

	out, err := Format(src)
	require.NoError(t, err)
	require.Equal(t, "package routes\n\nvar X = []string{\"a\", \"b\"}\n", string(out))
}

func TestFormatInvalid(t *testing.T) {
	_, err := Format([]byte("package routes\nvar = \n"))
	require.Error(t, err)
}
