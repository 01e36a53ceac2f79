// Package migrations embeds the SQL schema files so they ship inside the
// binary and can be applied by tests and deployments alike.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
