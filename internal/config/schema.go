package config

import (
	_ "embed"
)

//go:embed schema/config.cue
var configSchemaCUE []byte
