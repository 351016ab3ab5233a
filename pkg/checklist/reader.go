package checklist

import (
	"io/fs"
	"unicode/utf8"

	"emperror.dev/errors"
)

// ReadResult is the outcome of reading one text file. Exactly one of Content
// or Err is meaningful.
type ReadResult struct {
	Path    string
	Content string
	Size    int64
	Err     error
}

func (r ReadResult) OK() bool {
	return r.Err == nil
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}

func readText(fsys fs.FS, name string) ReadResult {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return ReadResult{Path: name, Err: errors.Wrapf(err, "cannot read '%s'", name)}
	}
	if !utf8.Valid(data) {
		return ReadResult{Path: name, Size: int64(len(data)), Err: errors.Errorf("'%s': invalid utf-8 content", name)}
	}
	return ReadResult{Path: name, Content: string(data), Size: int64(len(data))}
}
