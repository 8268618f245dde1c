package videobackend

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/matryer/is"
	"gocv.io/x/gocv"
)

func TestMockConnectionStopsAfterFrameCount(t *testing.T) {
	is := is.New(t)

	backend := MockWithFrames(2)
	conn, err := backend.Connect(context.Background(), "TestMock")
	is.NoErr(err)
	defer conn.Close()

	frame := backend.NewFrame()
	defer frame.Close()

	is.True(conn.IsOpen())
	is.NoErr(conn.Read(frame))
	is.NoErr(conn.Read(frame))
	is.True(!conn.IsOpen())
	is.True(errors.Is(conn.Read(frame), ErrEndOfStream))
}

func TestMockRecordingKeepsHeaderStillAndMovesBody(t *testing.T) {
	is := is.New(t)

	backend := MockWithFrames(2)
	conn, err := backend.Connect(context.Background(), "TestMock")
	is.NoErr(err)
	defer conn.Close()

	first, second := backend.NewFrame(), backend.NewFrame()
	defer first.Close()
	defer second.Close()
	is.NoErr(conn.Read(first))
	is.NoErr(conn.Read(second))

	a, _ := MatRef(first)
	b, _ := MatRef(second)
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(*a, *b, &diff)
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray)

	header := gray.Region(image.Rect(0, 0, mockCanvasW, 40))
	defer header.Close()
	is.Equal(gocv.CountNonZero(header), 0)
	is.True(gocv.CountNonZero(gray) > 0)
}
