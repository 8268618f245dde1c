package videoexport

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
)

var fs afero.Fs = afero.NewOsFs()

// Sink persists encoded images under a name.
type Sink interface {
	Write(ctx context.Context, name string, data []byte) error
	Remove(ctx context.Context, name string) error
	Location(name string) string
}

func LocalSink(dir string) Sink {
	return &localSink{dir: dir}
}

type localSink struct {
	dir string
}

func (s *localSink) Write(_ context.Context, name string, data []byte) error {
	if err := ensureDirectoryPathExists(s.dir); err != nil {
		return videoerr.IO("unable to create output directory %s: %v", s.dir, err)
	}
	if err := afero.WriteFile(fs, s.Location(name), data, 0644); err != nil {
		return videoerr.IO("unable to write %s: %v", s.Location(name), err)
	}
	return nil
}

func (s *localSink) Remove(_ context.Context, name string) error {
	if err := fs.Remove(s.Location(name)); err != nil {
		return videoerr.IO("unable to remove %s: %v", s.Location(name), err)
	}
	return nil
}

func (s *localSink) Location(name string) string {
	return filepath.Join(s.dir, name)
}

func ensureDirectoryPathExists(path string) error {
	if len(path) == 0 {
		return nil
	}
	err := fs.MkdirAll(path, os.ModePerm|os.ModeDir)
	if err == nil || os.IsExist(err) {
		return nil
	}
	return err
}

// Prepare readies sinks that need remote setup before the first write.
func Prepare(ctx context.Context, sink Sink) error {
	if ensurer, ok := sink.(interface{ EnsureBucket(context.Context) error }); ok {
		return ensurer.EnsureBucket(ctx)
	}
	return nil
}
