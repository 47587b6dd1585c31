// Package templates holds the built-in code generation templates.
package templates

import "embed"

//go:embed typescript/*.tmpl go/*.tmpl
var FS embed.FS
