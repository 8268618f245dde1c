package videobackend

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/tauraamui/longshot/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	defaultMockFrameCount = 60
	mockCanvasW           = 600
	mockCanvasH           = 400
	mockTitle             = "LONGSHOT_MOCK_RECORDING"
)

// mockVideoBackend renders a synthetic screen recording: a fixed header
// line over a static background, with a body line that moves every frame.
type mockVideoBackend struct {
	frameCount int
}

func (b *mockVideoBackend) Connect(cancel context.Context, addr string) (Connection, error) {
	select {
	case <-cancel.Done():
		return nil, xerror.New("connection cancelled")
	default:
	}

	fontFace, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, xerror.Errorf("unable to load font for mock recording: %w", err)
	}
	return &mockVideoConnection{
		title:      addr,
		frameCount: b.frameCount,
		font:       fontFace,
	}, nil
}

func (b *mockVideoBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type mockVideoConnection struct {
	uuid            string
	title           string
	frameCount      int
	index           int
	closed          bool
	font            *truetype.Font
	baseFrameCanvas image.Image
}

func (mvc *mockVideoConnection) UUID() string {
	if len(mvc.uuid) == 0 {
		mvc.uuid = uuid.NewString()
	}
	return mvc.uuid
}

func (mvc *mockVideoConnection) Read(frame videoframe.Frame) error {
	frameMatRef, err := MatRef(frame)
	if err != nil {
		return err
	}

	if mvc.closed || mvc.index >= mvc.frameCount {
		return ErrEndOfStream
	}

	if mvc.baseFrameCanvas == nil {
		mvc.baseFrameCanvas = renderBaseFrameCanvas()
	}

	img := mvc.renderFrame(mvc.index)
	mvc.index++

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return xerror.Errorf("unable to convert Go image into OpenCV mat: %w", err)
	}
	defer mat.Close()

	mat.CopyTo(frameMatRef)
	return nil
}

func (mvc *mockVideoConnection) renderFrame(index int) image.Image {
	canvas := cloneImage(mvc.baseFrameCanvas)
	drawText(canvas, mvc.font, 24, 8, 30, mockTitle)
	if len(mvc.title) > 0 {
		drawText(canvas, mvc.font, 24, 8, 100, mvc.title)
	}
	drawText(canvas, mvc.font, 48, 8, 160+(index*37)%180, fmt.Sprintf("frame %03d", index))
	return canvas
}

func (mvc *mockVideoConnection) IsOpen() bool {
	return !mvc.closed && mvc.index < mvc.frameCount
}

func (mvc *mockVideoConnection) Close() error {
	mvc.closed = true
	mvc.baseFrameCanvas = nil
	return nil
}

func renderBaseFrameCanvas() image.Image {
	var w, h int = mockCanvasW, mockCanvasH
	var hw, hh float64 = float64(w / 2), float64(h / 2)
	r := 200.0
	θ := 2 * math.Pi / 3
	cr := &circle{hw - r*math.Sin(0), hh - r*math.Cos(0), 300}
	cg := &circle{hw - r*math.Sin(θ), hh - r*math.Cos(θ), 300}
	cb := &circle{hw - r*math.Sin(-θ), hh - r*math.Cos(-θ), 300}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{
				cr.Brightness(float64(x), float64(y)),
				cg.Brightness(float64(x), float64(y)),
				cb.Brightness(float64(x), float64(y)),
				255,
			})
		}
	}
	return img
}

func cloneImage(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// drawText draws text with its baseline at y.
func drawText(canvas *image.RGBA, fontFace *truetype.Font, size float64, x, y int, text string) {
	fontDrawer := &font.Drawer{
		Dst: canvas,
		Src: image.White,
		Face: truetype.NewFace(fontFace, &truetype.Options{
			Size:    size,
			Hinting: font.HintingFull,
		}),
		Dot: fixed.P(x, y),
	}
	fontDrawer.DrawString(text)
}

type circle struct {
	X, Y, R float64
}

func (c *circle) Brightness(x, y float64) uint8 {
	var dx, dy float64 = c.X - x, c.Y - y
	d := math.Sqrt(dx*dx+dy*dy) / c.R
	if d > 1 {
		return 0
	}
	return 255
}
