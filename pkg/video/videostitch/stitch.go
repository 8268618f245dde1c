// Package videostitch concatenates frames top to bottom into one tall frame.
package videostitch

import (
	"image"

	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

// Stitch returns a new frame whose rows are the rows of every input frame
// in order. An empty sequence gives a nil frame and no error. The caller
// owns the returned frame.
func Stitch(frames videoframe.Sequence) (videoframe.Frame, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	mats := make([]*gocv.Mat, 0, len(frames))
	for i, f := range frames {
		mat, err := videobackend.MatRef(f)
		if err != nil {
			return nil, err
		}
		if mat.Empty() {
			return nil, videoerr.Precondition("frame %d is empty", i)
		}
		mats = append(mats, mat)
	}

	width, matType := mats[0].Cols(), mats[0].Type()
	height := 0
	for i, mat := range mats {
		if mat.Cols() != width {
			return nil, videoerr.Precondition("frame %d is %d wide, expected %d", i, mat.Cols(), width)
		}
		if mat.Type() != matType {
			return nil, videoerr.Precondition("frame %d has mat type %v, expected %v", i, mat.Type(), matType)
		}
		height += mat.Rows()
	}

	composite := gocv.NewMatWithSize(height, width, matType)
	top := 0
	for _, mat := range mats {
		block := composite.Region(image.Rect(0, top, width, top+mat.Rows()))
		mat.CopyTo(&block)
		block.Close()
		top += mat.Rows()
	}

	return videobackend.FrameFromMat(composite), nil
}
