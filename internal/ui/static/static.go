// Package static embeds the dashboard stylesheet.
package static

import "embed"

//go:embed app.css
var Files embed.FS
