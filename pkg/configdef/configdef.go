package configdef

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/dealancer/validate.v2"
)

type Stitch struct {
	Threshold      int     `json:"threshold" yaml:"threshold" env:"THRESHOLD" validate:"gte=0 & lte=255"`
	Ratio          float64 `json:"ratio" yaml:"ratio" env:"RATIO" validate:"gte=0 & lte=1"`
	PNGName        string  `json:"png_name" yaml:"png_name" env:"PNG_NAME" validate:"empty=false"`
	JPEGName       string  `json:"jpeg_name" yaml:"jpeg_name" env:"JPEG_NAME" validate:"empty=false"`
	JPEGQuality    int     `json:"jpeg_quality" yaml:"jpeg_quality" env:"JPEG_QUALITY" validate:"gte=1 & lte=100"`
	KeepPNG        bool    `json:"keep_png" yaml:"keep_png" env:"KEEP_PNG"`
	ThumbnailWidth int     `json:"thumbnail_width" yaml:"thumbnail_width" env:"THUMBNAIL_WIDTH" validate:"gte=0"`
	FrameLimit     int     `json:"frame_limit" yaml:"frame_limit" env:"FRAME_LIMIT" validate:"gte=0"`
}

type StaticRegion struct {
	DiffThreshold        int     `json:"diff_threshold" yaml:"diff_threshold" env:"DIFF_THRESHOLD" validate:"gte=0 & lte=255"`
	StaticScoreThreshold float64 `json:"static_score_threshold" yaml:"static_score_threshold" env:"SCORE_THRESHOLD" validate:"gte=0 & lte=255"`
	CheckHeader          bool    `json:"check_header" yaml:"check_header" env:"CHECK_HEADER"`
	CheckBanner          bool    `json:"check_banner" yaml:"check_banner" env:"CHECK_BANNER"`
	SampleSize           int     `json:"sample_size" yaml:"sample_size" env:"SAMPLE_SIZE" validate:"gte=1"`
	HeaderName           string  `json:"header_name" yaml:"header_name" env:"HEADER_NAME" validate:"empty=false"`
	BannerName           string  `json:"banner_name" yaml:"banner_name" env:"BANNER_NAME" validate:"empty=false"`
}

type Sink struct {
	Kind      string `json:"kind" yaml:"kind" env:"KIND" validate:"one_of=local,minio"`
	Endpoint  string `json:"endpoint" yaml:"endpoint" env:"ENDPOINT"`
	AccessKey string `json:"access_key" yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `json:"secret_key" yaml:"secret_key" env:"SECRET_KEY"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl" env:"USE_SSL"`
	Bucket    string `json:"bucket" yaml:"bucket" env:"BUCKET"`
	Prefix    string `json:"prefix" yaml:"prefix" env:"PREFIX"`
}

type Values struct {
	Debug           bool         `json:"debug" yaml:"debug" env:"DEBUG"`
	LogLevel        string       `json:"log_level" yaml:"log_level" env:"LOGGING_LEVEL"`
	Backend         string       `json:"backend" yaml:"backend" env:"BACKEND" validate:"one_of=opencv,mock"`
	OutputDir       string       `json:"output_dir" yaml:"output_dir" env:"OUTPUT_DIR" validate:"empty=false"`
	MetricsTextfile string       `json:"metrics_textfile" yaml:"metrics_textfile" env:"METRICS_TEXTFILE"`
	Sink            Sink         `json:"sink" yaml:"sink" envPrefix:"SINK_"`
	Stitch          Stitch       `json:"stitch" yaml:"stitch" envPrefix:"STITCH_"`
	StaticRegion    StaticRegion `json:"static_region" yaml:"static_region" envPrefix:"STATIC_"`
}

// RunValidate checks field constraints from the struct tags and then the
// rules spanning several fields.
func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if !hasExt(v.Stitch.PNGName, ".png") {
		return fmt.Errorf(validationErrorHeader, errors.New("stitch png name must end in .png"))
	}
	if !hasExt(v.Stitch.JPEGName, ".jpg", ".jpeg") {
		return fmt.Errorf(validationErrorHeader, errors.New("stitch jpeg name must end in .jpg or .jpeg"))
	}
	if !hasExt(v.StaticRegion.HeaderName, losslessExts...) {
		return fmt.Errorf(validationErrorHeader, errors.New("static header name must end in .png, .bmp, .tif or .tiff"))
	}
	if !hasExt(v.StaticRegion.BannerName, losslessExts...) {
		return fmt.Errorf(validationErrorHeader, errors.New("static banner name must end in .png, .bmp, .tif or .tiff"))
	}
	if HasDupOutputNames(v) {
		return fmt.Errorf(validationErrorHeader, errors.New("output file names must be unique"))
	}
	if v.Sink.Kind == "minio" && (len(v.Sink.Endpoint) == 0 || len(v.Sink.Bucket) == 0) {
		return fmt.Errorf(validationErrorHeader, errors.New("minio sink needs an endpoint and a bucket"))
	}
	return nil
}

// losslessExts are the extensions of formats that decode back to the exact pixels.
var losslessExts = []string{".png", ".bmp", ".tif", ".tiff"}

func hasExt(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// HasDupOutputNames reports whether two pipeline outputs would be written
// to the same file, ignoring case.
func HasDupOutputNames(v Values) (hasDup bool) {
	names := []string{v.Stitch.PNGName, v.Stitch.JPEGName, v.StaticRegion.HeaderName, v.StaticRegion.BannerName}
	for ni, name := range names {
		for i := ni + 1; i < len(names); i++ {
			if strings.EqualFold(filepath.Clean(name), filepath.Clean(names[i])) {
				hasDup = true
				return
			}
		}
	}
	return
}
