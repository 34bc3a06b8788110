package processor

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"github.com/aakash/content-server/apperror"
)

// Resize decodes data, scales it down to fit within width x height while
// preserving aspect ratio, and re-encodes it in the requested format. Images
// already inside the bounds are not enlarged.
func Resize(data []byte, width, height int, format string, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &apperror.ProcessingError{Message: "failed to decode image", Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() > width || bounds.Dy() > height {
		img = imaging.Fit(img, width, height, imaging.Lanczos)
	}

	return encode(img, format, quality)
}

// Compress re-encodes data in the requested format at the given quality
// without changing dimensions.
func Compress(data []byte, format string, quality int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &apperror.ProcessingError{Message: "failed to decode image", Err: err}
	}
	return encode(img, format, quality)
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return nil, &apperror.ProcessingError{Message: "unsupported output format " + format, Err: err}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(quality)); err != nil {
		return nil, &apperror.ProcessingError{Message: "failed to encode image", Err: err}
	}
	return buf.Bytes(), nil
}
