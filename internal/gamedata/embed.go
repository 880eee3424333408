// Package gamedata provides the embedded battle catalog: the character roster,
// boss stages and equipment, plus utilities for loading it.
package gamedata

import "embed"

// dataFS embeds all YAML files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
