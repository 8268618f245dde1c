package videobackend

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tauraamui/longshot/pkg/log"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVFrame struct {
	isClosed bool
	mat      gocv.Mat
}

// FrameFromMat wraps mat as a frame. The frame takes ownership of the mat.
func FrameFromMat(mat gocv.Mat) videoframe.Frame {
	return &openCVFrame{mat: mat}
}

// MatRef resolves the OpenCV matrix behind a frame.
func MatRef(frame videoframe.Frame) (*gocv.Mat, error) {
	if frame == nil {
		return nil, videoerr.Precondition("frame is nil")
	}
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return nil, videoerr.Precondition("must pass OpenCV frame, got %T", frame.DataRef())
	}
	return mat, nil
}

func (frame *openCVFrame) DataRef() interface{} {
	return &frame.mat
}

func (frame *openCVFrame) Dimensions() videoframe.Dimensions {
	return videoframe.Dimensions{W: frame.mat.Cols(), H: frame.mat.Rows(), C: frame.mat.Channels()}
}

func (frame *openCVFrame) Close() {
	if !frame.isClosed {
		frame.mat.Close()
		frame.isClosed = true
	}
}

type openCVBackend struct{}

func (b *openCVBackend) Connect(cancel context.Context, addr string) (Connection, error) {
	conn := openCVConnection{}
	err := conn.connect(cancel, addr)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (b *openCVBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type openCVConnection struct {
	uuid   string
	mu     sync.Mutex
	isOpen bool
	vc     *gocv.VideoCapture
}

func (c *openCVConnection) connect(cancel context.Context, addr string) error {
	connAndError := make(chan openVideoFileResult, 1)
	go openVideoFile(addr, connAndError)
	select {
	case r := <-connAndError:
		if r.err != nil {
			return videoerr.Decode("unable to open video file %s: %v", addr, r.err)
		}
		c.vc = r.vc
		c.isOpen = true
		return nil
	case <-cancel.Done():
		go closeLateCapture(addr, connAndError)
		return xerror.New("connection cancelled")
	}
}

// closeLateCapture waits for an open that outlived its cancelled connect
// and releases the capture it produced.
func closeLateCapture(addr string, connAndError chan openVideoFileResult) {
	r := <-connAndError
	if r.err != nil || r.vc == nil {
		return
	}
	if err := closeVideoCapture(r.vc); err != nil {
		log.Warn("Unable to close abandoned video capture for %s: %v", addr, err)
	}
}

type openVideoFileResult struct {
	vc  *gocv.VideoCapture
	err error
}

func openVideoFile(addr string, d chan openVideoFileResult) {
	vc, err := openVideoCapture(addr)
	d <- openVideoFileResult{vc: vc, err: err}
}

var openVideoCapture = func(addr string) (*gocv.VideoCapture, error) {
	return gocv.OpenVideoCapture(addr)
}

var closeVideoCapture = func(vc *gocv.VideoCapture) error {
	return vc.Close()
}

var readFromVideoConnection = func(vc *gocv.VideoCapture, mat *gocv.Mat) bool {
	if vc.IsOpened() {
		return vc.Read(mat)
	}
	return false
}

func (c *openCVConnection) UUID() string {
	if len(c.uuid) == 0 {
		c.uuid = uuid.NewString()
	}
	return c.uuid
}

func (c *openCVConnection) Read(frame videoframe.Frame) error {
	mat, err := MatRef(frame)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ok := readFromVideoConnection(c.vc, mat); !ok || mat.Empty() {
		return ErrEndOfStream
	}
	return nil
}

func (c *openCVConnection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isOpen {
		return c.vc.IsOpened()
	}
	return false
}

func (c *openCVConnection) Close() error {
	c.mu.Lock()
	c.isOpen = false
	c.mu.Unlock()
	if c.vc == nil {
		return nil
	}
	return c.vc.Close()
}
