package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want []Parameter
	}{
		{"no parameters", "posts", nil},
		{"root", "/", nil},
		{"single", "posts/{slug}", []Parameter{{Name: "slug", Required: true}}},
		{
			name: "multiple in order",
			uri:  "users/{id}/posts/{postId}",
			want: []Parameter{{Name: "id", Required: true}, {Name: "postId", Required: true}},
		},
		{"optional", "archive/{year?}", []Parameter{{Name: "year", Required: false}}},
		{"binding field", "posts/{post:slug}", []Parameter{{Name: "post", Required: true}}},
		{
			name: "duplicate kept once",
			uri:  "{team}/members/{team}",
			want: []Parameter{{Name: "team", Required: true}},
		},
		{"unterminated placeholder", "posts/{slug", nil},
		{"empty placeholder", "posts/{}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseParameters(tt.uri))
		})
	}
}

func TestNewRouteNormalizesMethods(t *testing.T) {
	r := NewRoute(RawRoute{
		Name:    "post.show",
		URI:     "posts/{slug}",
		Methods: []string{"get", "HEAD", "GET", " "},
	})

	require.Equal(t, []Method{MethodGet, MethodHead}, r.Methods)
	require.Equal(t, MethodGet, r.Method())
	require.Equal(t, []string{"slug"}, r.ParameterNames())
	require.True(t, r.HasParameters())
}

func TestRoutePath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"/", "/"},
		{"", "/"},
		{"admin/dash", "/admin/dash"},
		{"/already", "/already"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			require.Equal(t, tt.want, Route{URI: tt.uri}.Path())
		})
	}
}

func TestRouteWithoutMethods(t *testing.T) {
	r := Route{Name: "x"}
	require.Equal(t, Method(""), r.Method())
	require.Nil(t, r.ParameterNames())
}
