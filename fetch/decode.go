package fetch

import (
	"bytes"
	"image"

	// formats beyond those imaging registers
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// decode sniffs the format and decodes, honoring exif orientation.
func decode(data []byte) (img image.Image, format string, err error) {

	if len(data) == 0 {
		err = errors.New("empty body")
		return
	}

	_, format, err = image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		err = errors.Wrapf(err, "failed to sniff image format")
		return
	}

	img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	err = errors.Wrapf(err, "failed to decode %s", format)
	return
}
