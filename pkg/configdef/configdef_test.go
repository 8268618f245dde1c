package configdef_test

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/longshot/pkg/configdef"
)

const validBody = `{
	"backend": "opencv",
	"output_dir": "shots",
	"sink": {"kind": "local"},
	"stitch": {
		"threshold": 30,
		"ratio": 0.01,
		"png_name": "long1.png",
		"jpeg_name": "long1.jpg",
		"jpeg_quality": 90
	},
	"static_region": {
		"diff_threshold": 30,
		"static_score_threshold": 250,
		"check_header": true,
		"sample_size": 30,
		"header_name": "header.png",
		"banner_name": "banner.png"
	}
}`

func validValues(t *testing.T) configdef.Values {
	t.Helper()
	values := configdef.Values{}
	if err := json.Unmarshal([]byte(validBody), &values); err != nil {
		t.Fatal(err)
	}
	return values
}

func TestValidatePopulatedConfigPassesValidation(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	is.NoErr(values.RunValidate())
	is.Equal(values.Stitch.PNGName, "long1.png")
	is.True(values.StaticRegion.CheckHeader)
	is.True(!values.StaticRegion.CheckBanner)
}

func TestValidateFailsForThresholdAboveIntensityRange(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.Stitch.Threshold = 300
	is.Equal(values.RunValidate().Error(), `Validation error in field "Threshold" of type "int" using validator "lte=255"`)
}

func TestValidateFailsForZeroSampleSize(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.StaticRegion.SampleSize = 0
	is.Equal(values.RunValidate().Error(), `Validation error in field "SampleSize" of type "int" using validator "gte=1"`)
}

func TestValidateFailsForUnknownBackend(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.Backend = "ffmpeg"
	is.True(values.RunValidate() != nil)
}

func TestValidateFailsForWrongPNGExtension(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.Stitch.PNGName = "long1.bmp"
	is.Equal(values.RunValidate().Error(), "validation failed: stitch png name must end in .png")
}

func TestValidateFailsForWrongJPEGExtension(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.Stitch.JPEGName = "long1.png2"
	is.Equal(values.RunValidate().Error(), "validation failed: stitch jpeg name must end in .jpg or .jpeg")
}

func TestValidateFailsForSharedOutputNames(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.StaticRegion.BannerName = "header.png"
	is.Equal(values.RunValidate().Error(), "validation failed: output file names must be unique")
}

func TestValidateFailsForMinIOSinkWithoutBucket(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.Sink = configdef.Sink{Kind: "minio", Endpoint: "localhost:9000"}
	is.Equal(values.RunValidate().Error(), "validation failed: minio sink needs an endpoint and a bucket")

	values.Sink.Bucket = "shots"
	is.NoErr(values.RunValidate())
}

func TestHasDupOutputNames(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	is.True(!configdef.HasDupOutputNames(values))

	values.Stitch.JPEGName = values.Stitch.PNGName
	is.True(configdef.HasDupOutputNames(values))
}

func TestValidateFailsForLossyBannerName(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.StaticRegion.BannerName = "banner.jpg"
	is.Equal(values.RunValidate().Error(), "validation failed: static banner name must end in .png, .bmp, .tif or .tiff")
}

func TestValidateFailsForUnsupportedHeaderName(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.StaticRegion.HeaderName = "header.gif"
	is.Equal(values.RunValidate().Error(), "validation failed: static header name must end in .png, .bmp, .tif or .tiff")
}

func TestValidateAcceptsLosslessBandNames(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.StaticRegion.HeaderName = "header.TIFF"
	values.StaticRegion.BannerName = "banner.bmp"
	is.NoErr(values.RunValidate())
}

func TestValidateFailsForOutputNamesDifferingOnlyInCase(t *testing.T) {
	is := is.New(t)
	values := validValues(t)
	values.StaticRegion.BannerName = "HEADER.PNG"
	is.Equal(values.RunValidate().Error(), "validation failed: output file names must be unique")
	is.True(configdef.HasDupOutputNames(values))
}
