// Package static embeds the API documentation assets served under /static
// and /docs.
package static

import "embed"

// OpenAPIPage is the docs UI page inside FS.
const OpenAPIPage = "openapi.html"

//go:embed openapi.html openapi.json
var FS embed.FS
