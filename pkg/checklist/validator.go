package checklist

import (
	"io/fs"
	"path"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize"
	"github.com/je4/utils/v2/pkg/zLogger"
	"github.com/rs/zerolog"
)

func NewValidator(fsys fs.FS, profile *Profile, logger zLogger.ZLogger) (*Validator, error) {
	if fsys == nil {
		return nil, errors.New("no project filesystem")
	}
	if profile == nil {
		return nil, errors.New("no profile")
	}
	if err := profile.normalize(); err != nil {
		return nil, errors.Wrap(err, "invalid profile")
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Validator{
		fsys:    fsys,
		profile: profile,
		logger:  logger,
	}, nil
}

// Validator runs the checklist of a profile against one project. It is not
// safe for concurrent use.
type Validator struct {
	fsys      fs.FS
	profile   *Profile
	logger    zLogger.ZLogger
	status    *Status
	bytesRead int64
}

// Check runs all phases in order and returns a fresh status. No phase is
// skipped because of findings in an earlier one.
func (v *Validator) Check() *Status {
	v.status = NewStatus()
	v.bytesRead = 0

	v.checkStructure()
	v.checkManifest()
	v.checkSources()
	v.checkResources()
	v.checkDependencies()

	v.logger.Debug().Msgf("checked %s of text content: %d errors, %d warnings, %d ok",
		humanize.Bytes(uint64(v.bytesRead)),
		len(v.status.Errors), len(v.status.Warnings), len(v.status.Info))
	return v.status
}

// Validate is Check reduced to the verdict.
func (v *Validator) Validate() bool {
	return v.Check().OK()
}

func (v *Validator) BytesRead() int64 {
	return v.bytesRead
}

func (v *Validator) add(phase Phase, code FindingCode, kind Kind, sev Severity, subject, format string, a ...any) {
	f := newFinding(phase, code, kind, sev, subject, format, a...)
	v.logger.Debug().Str("phase", string(phase)).Str("code", string(code)).Msgf("[%s] %s", sev, f.Message)
	v.status.Add(f)
}

func (v *Validator) read(name string) ReadResult {
	res := readText(v.fsys, name)
	if res.OK() {
		v.bytesRead += res.Size
		v.logger.Debug().Msgf("read '%s' (%s)", name, humanize.Bytes(uint64(res.Size)))
	} else {
		v.logger.Debug().Msgf("cannot read '%s': %v", name, res.Err)
	}
	return res
}

func joinPath(dir, name string) string {
	return path.Join(dir, name)
}
