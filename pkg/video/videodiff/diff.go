// Package videodiff filters a frame sequence down to the frames that are
// visually distinct from the frame immediately before them.
package videodiff

import (
	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

const (
	DefaultThreshold = 30
	DefaultRatio     = 0.01
)

type Options struct {
	// Threshold is the intensity difference a pixel must exceed to count as changed.
	Threshold int
	// Ratio is the fraction of pixels that must change for a frame to be kept.
	Ratio float64
}

func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Ratio: DefaultRatio}
}

// Unique keeps the first frame and every later frame that differs from
// its immediate predecessor in the input, not from the last kept frame.
// The result shares frames with the input, which remains their owner.
func Unique(frames videoframe.Sequence, opts Options) (videoframe.Sequence, error) {
	if len(frames) == 0 {
		return videoframe.Sequence{}, nil
	}

	want, err := shapeOf(frames[0], 0)
	if err != nil {
		return nil, err
	}

	unique := videoframe.Sequence{frames[0]}
	prevGray, err := toGray(frames[0])
	if err != nil {
		return nil, err
	}
	defer func() { prevGray.Close() }()

	for i := 1; i < len(frames); i++ {
		got, err := shapeOf(frames[i], i)
		if err != nil {
			return nil, err
		}
		if got != want {
			return nil, videoerr.Precondition(
				"frame %d is %dx%dx%d, expected %dx%dx%d", i, got.W, got.H, got.C, want.W, want.H, want.C,
			)
		}

		gray, err := toGray(frames[i])
		if err != nil {
			return nil, err
		}

		if float64(changedPixels(prevGray, gray, opts.Threshold)) > ratioOf(gray, opts.Ratio) {
			unique = append(unique, frames[i])
		}

		prevGray.Close()
		prevGray = gray
	}

	return unique, nil
}

// Different reports whether b differs from a by more than opts allow.
func Different(a, b videoframe.Frame, opts Options) (bool, error) {
	da, err := shapeOf(a, 0)
	if err != nil {
		return false, err
	}
	db, err := shapeOf(b, 1)
	if err != nil {
		return false, err
	}
	if da != db {
		return false, videoerr.Precondition("cannot compare %dx%dx%d frame with %dx%dx%d frame", da.W, da.H, da.C, db.W, db.H, db.C)
	}

	grayA, err := toGray(a)
	if err != nil {
		return false, err
	}
	defer grayA.Close()
	grayB, err := toGray(b)
	if err != nil {
		return false, err
	}
	defer grayB.Close()

	return float64(changedPixels(grayA, grayB, opts.Threshold)) > ratioOf(grayB, opts.Ratio), nil
}

func shapeOf(frame videoframe.Frame, index int) (videoframe.Dimensions, error) {
	mat, err := videobackend.MatRef(frame)
	if err != nil {
		return videoframe.Dimensions{}, err
	}
	if mat.Empty() {
		return videoframe.Dimensions{}, videoerr.Precondition("frame %d is empty", index)
	}
	return frame.Dimensions(), nil
}

// changedPixels counts pixels whose absolute difference is strictly above threshold.
func changedPixels(a, b gocv.Mat, threshold int) int {
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(a, b, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, float32(threshold), 255, gocv.ThresholdBinary)

	return gocv.CountNonZero(mask)
}

func ratioOf(mat gocv.Mat, ratio float64) float64 {
	return float64(mat.Rows()*mat.Cols()) * ratio
}
