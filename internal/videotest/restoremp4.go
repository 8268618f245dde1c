package videotest

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

const fixtureCodec = "MJPG"

// WriteVideoFile encodes mats into a temporary MJPG/AVI file and returns
// its path. The caller removes the file.
func WriteVideoFile(mats []gocv.Mat, fps float64) (string, error) {
	if len(mats) == 0 {
		return "", xerror.New("cannot write video fixture without frames")
	}

	path := filepath.Join(os.TempDir(), "longshot-"+uuid.NewString()+".avi")
	vw, err := gocv.VideoWriterFile(path, fixtureCodec, fps, mats[0].Cols(), mats[0].Rows(), mats[0].Channels() == 3)
	if err != nil {
		return "", err
	}
	defer vw.Close()

	for _, mat := range mats {
		if err := vw.Write(mat); err != nil {
			return "", err
		}
	}
	return path, nil
}
