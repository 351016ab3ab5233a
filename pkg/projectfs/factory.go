package projectfs

import (
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"emperror.dev/errors"
	"github.com/je4/filesystem/v3/pkg/osfsrw"
	"github.com/je4/filesystem/v3/pkg/writefs"
	"github.com/je4/filesystem/v3/pkg/zipfs"
	"github.com/je4/utils/v2/pkg/zLogger"
)

// Factory opens project roots read only. A root is a folder, a zip archive
// or a folder inside a zip archive (project.zip/shieldkids).
type Factory struct {
	fsFactory *writefs.Factory
	logger    zLogger.ZLogger
}

func NewFactory(logger zLogger.ZLogger) (*Factory, error) {
	fsFactory, err := writefs.NewFactory()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create filesystem factory")
	}
	if err := fsFactory.Register(zipfs.NewCreateFSFunc(logger), "(?i)\\.zip$", writefs.HighFS); err != nil {
		return nil, errors.Wrap(err, "cannot register zipfs")
	}
	if err := fsFactory.Register(osfsrw.NewCreateFSFunc(logger), "", writefs.LowFS); err != nil {
		return nil, errors.Wrap(err, "cannot register osfs")
	}
	return &Factory{
		fsFactory: fsFactory,
		logger:    logger,
	}, nil
}

// Get returns the project filesystem and the closer releasing it.
func (f *Factory) Get(root string) (fs.FS, io.Closer, error) {
	root = TrimFileScheme(root)
	zipFile, subPath, isZip := splitZip(root)
	if !isZip {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot stat '%s'", root)
		}
		if !fi.IsDir() {
			return nil, nil, errors.Errorf("'%s' is not a directory", root)
		}
		zipFile = root
	}

	f.logger.Debug().Msgf("opening '%s'", zipFile)
	fsys, err := f.fsFactory.Get(zipFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot get filesystem for '%s'", zipFile)
	}
	closer := &fsCloser{fsys: fsys}
	if subPath == "" {
		return fsys, closer, nil
	}

	fi, err := fs.Stat(fsys, subPath)
	if err != nil {
		closer.Close()
		return nil, nil, errors.Wrapf(err, "cannot find '%s' in '%s'", subPath, zipFile)
	}
	if !fi.IsDir() {
		closer.Close()
		return nil, nil, errors.Errorf("'%s' in '%s' is not a folder", subPath, zipFile)
	}
	sub, err := fs.Sub(fsys, subPath)
	if err != nil {
		closer.Close()
		return nil, nil, errors.Wrapf(err, "cannot create sub filesystem '%s'", subPath)
	}
	return sub, closer, nil
}

type fsCloser struct {
	fsys fs.FS
}

func (c *fsCloser) Close() error {
	return errors.WithStack(writefs.Close(c.fsys))
}

func splitZip(p string) (zipFile string, subPath string, ok bool) {
	lower := strings.ToLower(p)
	if strings.HasSuffix(lower, ".zip") {
		return p, "", true
	}
	if pos := strings.Index(lower, ".zip/"); pos != -1 {
		subPath = strings.Trim(p[pos+5:], "/")
		if subPath != "" {
			subPath = path.Clean(subPath)
		}
		return p[0 : pos+4], subPath, true
	}
	return "", "", false
}

// TrimFileScheme removes a leading file:// from path.
func TrimFileScheme(path string) string {
	if strings.HasPrefix(strings.ToLower(path), "file://") {
		return path[len("file://"):]
	}
	return path
}
