package templates

import (
	_ "embed"
)

//go:embed checklist.tmpl
var Checklist string
