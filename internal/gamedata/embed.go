// Package gamedata holds the building and room size definitions compiled
// into the binary, plus helpers to load and validate them.
package gamedata

import "embed"

// dataFS holds every definition file. New files must be listed here.
//
//go:embed buildings.json room_sizes.json
var dataFS embed.FS
