// Package testdata embeds the golden cases shared by the package tests.
package testdata

import "embed"

// AcceptanceTests holds pipeline cases: acceptancetests/NNN_name/input.js with expected.json.
//
//go:embed acceptancetests/*/*.js acceptancetests/*/*.json
var AcceptanceTests embed.FS

// InspectTests holds tree dump cases: inspect/NNN_name/input.js with expected.json.
//
//go:embed inspect/*/*.js inspect/*/*.json
var InspectTests embed.FS

