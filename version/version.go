package version

import "fmt"

// set via -ldflags at release time
var (
	Version = "dev-0.0.0"
	Commit  = "000000000000000000000000000000000badf00d"
	Date    = "1970-01-01T00:00:01Z"
	BuiltBy = "dev"
)

// ShortCommit returns a short commit hash.
func ShortCommit() string {
	if len(Commit) < 7 {
		return Commit
	}
	return Commit[:7]
}

// Info returns the one-line build description printed by the version command.
func Info(program string) string {
	return fmt.Sprintf("%s %s (%s) built %s by %s", program, Version, ShortCommit(), Date, BuiltBy)
}
