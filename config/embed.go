package config

import (
	_ "embed"
)

//go:embed droidcheck.toml
var DefaultConfig []byte
