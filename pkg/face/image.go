package face

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder

	"golang.org/x/image/draw"
)

// maxDimension caps the longest image edge before extraction. Detection
// models do no better on larger inputs and the upload may be huge.
const maxDimension = 1024

// ErrNotImage indicates the uploaded bytes are not a decodable image.
var ErrNotImage = errors.New("file is not a decodable image")

// ValidateImage checks that data decodes as an image and returns its
// format name ("jpeg", "png", "gif").
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrNotImage)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotImage, err)
	}
	return format, nil
}

// Preprocess decodes an uploaded image, downscales it so neither edge
// exceeds maxDimension, and re-encodes it as JPEG for the extractor.
// Images already within bounds are still normalized to JPEG.
func Preprocess(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotImage, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxDimension || height > maxDimension {
		if width > height {
			height = height * maxDimension / width
			width = maxDimension
		} else {
			width = width * maxDimension / height
			height = maxDimension
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode preprocessed image: %w", err)
	}
	return buf.Bytes(), nil
}
