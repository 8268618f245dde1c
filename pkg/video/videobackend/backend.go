package videobackend

import (
	"context"
	"errors"

	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
)

// ErrEndOfStream is returned by Connection.Read once the source has no
// more frames to give.
var ErrEndOfStream = errors.New("end of video stream")

type Connection interface {
	UUID() string
	Read(videoframe.Frame) error
	IsOpen() bool
	Close() error
}

type Backend interface {
	Connect(context.Context, string) (Connection, error)
	NewFrame() videoframe.Frame
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Mock() Backend {
	return MockWithFrames(defaultMockFrameCount)
}

func MockWithFrames(count int) Backend {
	return &mockVideoBackend{frameCount: count}
}

func Resolve(t string) Backend {
	switch t {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}

// Decode opens addr and reads up to limit frames from it, or every frame
// when limit is zero or less. The caller owns the returned sequence.
func Decode(ctx context.Context, backend Backend, addr string, limit int) (videoframe.Sequence, error) {
	conn, err := backend.Connect(ctx, addr)
	if err != nil {
		if errors.Is(err, videoerr.ErrDecode) {
			return nil, err
		}
		return nil, videoerr.Decode("unable to open %s: %v", addr, err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Warn("Unable to close video connection [%s]: %v", conn.UUID(), err)
		}
	}()

	log.Debug("Opened video connection [%s] to %s", conn.UUID(), addr)
	return ReadFrames(ctx, backend, conn, limit)
}

func ReadFrames(ctx context.Context, backend Backend, conn Connection, limit int) (videoframe.Sequence, error) {
	var frames videoframe.Sequence
	for limit <= 0 || len(frames) < limit {
		select {
		case <-ctx.Done():
			frames.Close()
			return nil, videoerr.Decode("reading frames cancelled: %v", ctx.Err())
		default:
		}

		frame := backend.NewFrame()
		err := conn.Read(frame)
		if errors.Is(err, ErrEndOfStream) {
			frame.Close()
			break
		}
		if err != nil {
			frame.Close()
			frames.Close()
			return nil, videoerr.Decode("unable to read frame %d: %v", len(frames), err)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
