// Package videoregion finds header and banner bands that stay unchanged
// across a sample of frames.
package videoregion

import (
	"image"

	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videodiff"
	"github.com/tauraamui/longshot/pkg/video/videoerr"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

const (
	DefaultDiffThreshold        = 30
	DefaultStaticScoreThreshold = 250.0
	// bandDivisor sizes each band as a fraction of the frame height.
	bandDivisor = 10
	// staticCutoff is the normalised accumulator value at or below which a pixel counts as static.
	staticCutoff = 1
)

type Options struct {
	CheckHeader          bool
	CheckBanner          bool
	DiffThreshold        int
	StaticScoreThreshold float64
}

func DefaultOptions() Options {
	return Options{
		CheckHeader:          true,
		CheckBanner:          true,
		DiffThreshold:        DefaultDiffThreshold,
		StaticScoreThreshold: DefaultStaticScoreThreshold,
	}
}

// Result holds the reference frame slice for each band found static.
// Scores are the mean of the static mask over each checked band.
type Result struct {
	Header      videoframe.Frame
	Banner      videoframe.Frame
	HeaderScore float64
	BannerScore float64
}

func (r Result) Close() {
	if r.Header != nil {
		r.Header.Close()
	}
	if r.Banner != nil {
		r.Banner.Close()
	}
}

// Detect compares every frame in the sample against the first one and
// reports which of the requested bands never changed. The first frame
// is the reference and is the source of any returned slice.
func Detect(frames videoframe.Sequence, opts Options) (Result, error) {
	if len(frames) == 0 {
		return Result{}, nil
	}

	mats, err := sampleMats(frames)
	if err != nil {
		return Result{}, err
	}
	reference := mats[0]
	height, width := reference.Rows(), reference.Cols()

	accum := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV32F)
	defer accum.Close()

	for _, mat := range mats[1:] {
		if err := accumulateDifference(&accum, *reference, *mat, opts.DiffThreshold); err != nil {
			return Result{}, err
		}
	}

	// the reference is never compared with itself, yet the divisor is the
	// full sample size, which slightly deflates every cell
	accum.DivideFloat(float32(len(mats)))

	staticMask := gocv.NewMat()
	defer staticMask.Close()
	gocv.Threshold(accum, &staticMask, staticCutoff, 255, gocv.ThresholdBinaryInv)

	bandHeight := height / bandDivisor
	if bandHeight == 0 {
		return Result{}, nil
	}

	var result Result
	if opts.CheckHeader {
		rect := image.Rect(0, 0, width, bandHeight)
		result.HeaderScore = meanOf(staticMask, rect)
		if result.HeaderScore > opts.StaticScoreThreshold {
			result.Header = sliceOf(*reference, rect)
		}
	}

	if opts.CheckBanner {
		rect := image.Rect(0, height-bandHeight, width, height)
		result.BannerScore = meanOf(staticMask, rect)
		if result.BannerScore > opts.StaticScoreThreshold {
			result.Banner = sliceOf(*reference, rect)
		}
	}

	return result, nil
}

func sampleMats(frames videoframe.Sequence) ([]*gocv.Mat, error) {
	mats := make([]*gocv.Mat, 0, len(frames))
	for i, f := range frames {
		mat, err := videobackend.MatRef(f)
		if err != nil {
			return nil, err
		}
		if mat.Empty() {
			return nil, videoerr.Precondition("frame %d is empty", i)
		}
		if i > 0 {
			ref := mats[0]
			if mat.Rows() != ref.Rows() || mat.Cols() != ref.Cols() || mat.Type() != ref.Type() {
				return nil, videoerr.Precondition(
					"frame %d is %dx%d (type %v), reference is %dx%d (type %v)",
					i, mat.Cols(), mat.Rows(), mat.Type(), ref.Cols(), ref.Rows(), ref.Type(),
				)
			}
		}
		mats = append(mats, mat)
	}
	return mats, nil
}

// accumulateDifference adds 255 to every accumulator cell whose intensity
// difference between reference and mat is strictly above threshold.
func accumulateDifference(accum *gocv.Mat, reference, mat gocv.Mat, threshold int) error {
	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(reference, mat, &diff)

	gray, err := videodiff.Gray(diff)
	if err != nil {
		return err
	}
	defer gray.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, float32(threshold), 255, gocv.ThresholdBinary)

	maskF := gocv.NewMat()
	defer maskF.Close()
	mask.ConvertTo(&maskF, gocv.MatTypeCV32F)

	gocv.Add(*accum, maskF, accum)
	return nil
}

func meanOf(mat gocv.Mat, rect image.Rectangle) float64 {
	region := mat.Region(rect)
	defer region.Close()
	return region.Mean().Val1
}

func sliceOf(mat gocv.Mat, rect image.Rectangle) videoframe.Frame {
	region := mat.Region(rect)
	defer region.Close()
	return videobackend.FrameFromMat(region.Clone())
}
