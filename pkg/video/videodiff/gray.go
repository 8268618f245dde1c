package videodiff

import (
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

// toGray returns a new single channel intensity mat for frame.
func toGray(frame videoframe.Frame) (gocv.Mat, error) {
	mat, err := videobackend.MatRef(frame)
	if err != nil {
		return gocv.Mat{}, err
	}
	return Gray(*mat)
}

// Gray collapses mat to single channel intensity using the standard
// luma weights. Single channel input is copied as is. The caller closes
// the result unless an error is returned.
func Gray(mat gocv.Mat) (gocv.Mat, error) {
	channels := mat.Channels()
	if channels != 1 && channels != 3 && channels != 4 {
		return gocv.Mat{}, videoerr.Precondition("unsupported channel count %d", channels)
	}

	gray := gocv.NewMat()
	switch channels {
	case 1:
		mat.CopyTo(&gray)
	case 3:
		gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(mat, &gray, gocv.ColorBGRAToGray)
	}
	return gray, nil
}
