package longshot_test

import (
	"context"
	"strings"
	"sync"

	"github.com/tauraamui/longshot/pkg/video/videoerr"
)

type memorySink struct {
	mu     sync.Mutex
	files  map[string][]byte
	failOn string
}

func newMemorySink() *memorySink {
	return &memorySink{files: map[string][]byte{}}
}

func (s *memorySink) Write(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.failOn) > 0 && strings.HasSuffix(name, s.failOn) {
		return videoerr.IO("unable to write %s: sink refused", name)
	}
	s.files[name] = data
	return nil
}

func (s *memorySink) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return videoerr.IO("unable to remove %s: not found", name)
	}
	delete(s.files, name)
	return nil
}

func (s *memorySink) Location(name string) string {
	return "mem://" + name
}

func (s *memorySink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	for name := range s.files {
		names = append(names, name)
	}
	return names
}
