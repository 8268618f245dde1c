// Package videotest builds deterministic frames and video fixtures for tests.
package videotest

import (
	"math/rand"
	"runtime"

	"github.com/tauraamui/longshot/pkg/video/videobackend"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"gocv.io/x/gocv"
)

// SolidMat returns a 3 channel BGR mat filled with a single colour.
func SolidMat(rows, cols int, b, g, r uint8) gocv.Mat {
	data := make([]byte, rows*cols*3)
	for i := 0; i < len(data); i += 3 {
		data[i], data[i+1], data[i+2] = b, g, r
	}
	return MatFromBytes(rows, cols, gocv.MatTypeCV8UC3, data)
}

// GrayMat returns a single channel mat filled with v.
func GrayMat(rows, cols int, v uint8) gocv.Mat {
	data := make([]byte, rows*cols)
	for i := range data {
		data[i] = v
	}
	return MatFromBytes(rows, cols, gocv.MatTypeCV8U, data)
}

// RandomBytes returns n bytes drawn from a source seeded with seed.
func RandomBytes(n int, seed int64) []byte {
	data := make([]byte, n)
	rnd := rand.New(rand.NewSource(seed))
	rnd.Read(data)
	return data
}

func RandomMat(rows, cols int, seed int64) gocv.Mat {
	return MatFromBytes(rows, cols, gocv.MatTypeCV8UC3, RandomBytes(rows*cols*3, seed))
}

// MatFromBytes copies data into a new mat so the result does not keep
// referencing Go memory.
func MatFromBytes(rows, cols int, mt gocv.MatType, data []byte) gocv.Mat {
	mat, err := gocv.NewMatFromBytes(rows, cols, mt, data)
	if err != nil {
		panic(err)
	}
	defer mat.Close()
	owned := mat.Clone()
	runtime.KeepAlive(data)
	return owned
}

// Sequence wraps mats as frames, handing ownership of each mat to the sequence.
func Sequence(mats ...gocv.Mat) videoframe.Sequence {
	seq := make(videoframe.Sequence, 0, len(mats))
	for _, mat := range mats {
		seq = append(seq, videobackend.FrameFromMat(mat))
	}
	return seq
}

// Bytes returns a copy of the pixel data behind a frame.
func Bytes(frame videoframe.Frame) []byte {
	mat, err := videobackend.MatRef(frame)
	if err != nil {
		panic(err)
	}
	clone := mat.Clone()
	defer clone.Close()
	return clone.ToBytes()
}
