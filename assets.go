// Package dashboard provides embedded assets for production builds.
package dashboard

import "embed"

// Embedded translation tables. In dev mode translations can be loaded from
// disk instead so new strings show up without a rebuild.

//go:embed localization/messages.*.toml
var LocalizationFS embed.FS
