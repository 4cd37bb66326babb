// Package configs provides the embedded default configuration file.
// Run `go generate ./pkg/configs` to update it from the root directory.
package configs

//go:generate cp ../../vselect.yml vselect.yml

import _ "embed"

// DefaultConfigBytes is the configuration template printed by `vselect config`.
//
//go:embed vselect.yml
var DefaultConfigBytes []byte
