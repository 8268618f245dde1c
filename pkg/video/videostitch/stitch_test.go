package videostitch_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/longshot/internal/videotest"
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"github.com/tauraamui/longshot/pkg/video/videostitch"
	"gocv.io/x/gocv"
)

func TestStitchEmptySequenceGivesNoFrame(t *testing.T) {
	is := is.New(t)

	frame, err := videostitch.Stitch(nil)
	is.NoErr(err)
	is.True(frame == nil)
}

func TestStitchConcatenatesFramesInOrder(t *testing.T) {
	is := is.New(t)
	const n, h, w = 4, 12, 16

	frames := videoframe.Sequence{}
	for i := 0; i < n; i++ {
		frames = append(frames, videobackend.FrameFromMat(videotest.RandomMat(h, w, int64(i+1))))
	}
	defer frames.Close()

	composite, err := videostitch.Stitch(frames)
	is.NoErr(err)
	is.True(composite != nil)
	defer composite.Close()

	is.Equal(composite.Dimensions(), videoframe.Dimensions{W: w, H: n * h, C: 3})

	got := videotest.Bytes(composite)
	block := h * w * 3
	for i := 0; i < n; i++ {
		is.True(bytes.Equal(got[i*block:(i+1)*block], videotest.Bytes(frames[i]))) // row block matches frame
	}
}

func TestStitchAllowsDifferentHeights(t *testing.T) {
	is := is.New(t)
	frames := videotest.Sequence(videotest.SolidMat(3, 5, 1, 1, 1), videotest.SolidMat(7, 5, 2, 2, 2))
	defer frames.Close()

	composite, err := videostitch.Stitch(frames)
	is.NoErr(err)
	defer composite.Close()

	is.Equal(composite.Dimensions().H, 10)
	mat, _ := videobackend.MatRef(composite)
	is.Equal(mat.GetUCharAt(2, 0), uint8(1))
	is.Equal(mat.GetUCharAt(3, 0), uint8(2))
}

func TestStitchRejectsMismatchedWidths(t *testing.T) {
	is := is.New(t)
	frames := videotest.Sequence(videotest.SolidMat(3, 5, 0, 0, 0), videotest.SolidMat(3, 6, 0, 0, 0))
	defer frames.Close()

	composite, err := videostitch.Stitch(frames)
	is.True(composite == nil)
	is.True(errors.Is(err, videoerr.ErrPrecondition))
}

func TestStitchRejectsMismatchedChannels(t *testing.T) {
	is := is.New(t)
	frames := videotest.Sequence(videotest.SolidMat(3, 5, 0, 0, 0), videotest.GrayMat(3, 5, 0))
	defer frames.Close()

	_, err := videostitch.Stitch(frames)
	is.True(errors.Is(err, videoerr.ErrPrecondition))
}

func TestStitchRejectsEmptyMat(t *testing.T) {
	is := is.New(t)
	frames := videotest.Sequence(gocv.NewMat())
	defer frames.Close()

	_, err := videostitch.Stitch(frames)
	is.True(errors.Is(err, videoerr.ErrPrecondition))
}
