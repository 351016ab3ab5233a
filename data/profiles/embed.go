package profiles

import (
	_ "embed"
)

//go:embed shieldkids.toml
var DefaultProfile []byte

//go:embed profile.schema.json
var ProfileSchema []byte

const ProfileSchemaURL = "https://github.com/shieldtechhub/droidcheck/profile.schema.json"
