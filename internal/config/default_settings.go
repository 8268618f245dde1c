package config

import "github.com/tauraamui/longshot/pkg/configdef"

type defaultSettingKey uint

const (
	BACKEND defaultSettingKey = iota
	OUTPUTDIR
	SINKKIND
	STITCHTHRESHOLD
	STITCHRATIO
	STITCHPNGNAME
	STITCHJPEGNAME
	STITCHJPEGQUALITY
	STATICDIFFTHRESHOLD
	STATICSCORETHRESHOLD
	STATICSAMPLESIZE
	STATICHEADERNAME
	STATICBANNERNAME
)

var defaultSettings = map[defaultSettingKey]interface{}{
	BACKEND:              "opencv",
	OUTPUTDIR:            ".",
	SINKKIND:             "local",
	STITCHTHRESHOLD:      30,
	STITCHRATIO:          0.01,
	STITCHPNGNAME:        "long.png",
	STITCHJPEGNAME:       "long.jpg",
	STITCHJPEGQUALITY:    90,
	STATICDIFFTHRESHOLD:  30,
	STATICSCORETHRESHOLD: 250.0,
	STATICSAMPLESIZE:     30,
	STATICHEADERNAME:     "header.png",
	STATICBANNERNAME:     "banner.png",
}

// Defaults gives the values used for anything a config file leaves out.
func Defaults() configdef.Values {
	return configdef.Values{
		Backend:   defaultSettings[BACKEND].(string),
		OutputDir: defaultSettings[OUTPUTDIR].(string),
		Sink: configdef.Sink{
			Kind: defaultSettings[SINKKIND].(string),
		},
		Stitch: configdef.Stitch{
			Threshold:   defaultSettings[STITCHTHRESHOLD].(int),
			Ratio:       defaultSettings[STITCHRATIO].(float64),
			PNGName:     defaultSettings[STITCHPNGNAME].(string),
			JPEGName:    defaultSettings[STITCHJPEGNAME].(string),
			JPEGQuality: defaultSettings[STITCHJPEGQUALITY].(int),
		},
		StaticRegion: configdef.StaticRegion{
			DiffThreshold:        defaultSettings[STATICDIFFTHRESHOLD].(int),
			StaticScoreThreshold: defaultSettings[STATICSCORETHRESHOLD].(float64),
			CheckHeader:          true,
			CheckBanner:          true,
			SampleSize:           defaultSettings[STATICSAMPLESIZE].(int),
			HeaderName:           defaultSettings[STATICHEADERNAME].(string),
			BannerName:           defaultSettings[STATICBANNERNAME].(string),
		},
	}
}
