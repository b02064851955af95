package imaging

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", "tiff", "bmp" or "unknown", taken from
	// the file extension.
	Format string `json:"format"`

	// Grayscale is true when the decoded image is already single-channel.
	Grayscale bool `json:"grayscale"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Load decodes an image file from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF, BMP and TIFF.
//
// Returns:
//   - image.Image: The decoded image. JPEG files carrying an EXIF orientation
//     tag are rotated upright so that rows and columns match what a viewer shows.
//   - error: Non-nil if the file cannot be opened or decoded.
func Load(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// LoadGray decodes an image file and reduces it to a single 8-bit channel.
func LoadGray(path string) (*image.Gray, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ToGray(img), nil
}

// ToGray reduces an image to single-channel 8-bit intensities.
//
// Images that are already *image.Gray are copied unchanged with their origin
// moved to (0,0). Color images are converted with ITU-R BT.601 luma weights
// (0.299*R + 0.587*G + 0.114*B), rounded to the nearest integer.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out
	}

	// imaging.Grayscale keeps the image in NRGBA form with equal R, G and B.
	gray := imaging.Grayscale(img)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[y*out.Stride+x] = gray.Pix[y*gray.Stride+x*4]
		}
	}
	return out
}

// LoadImageInfo describes an already decoded image file. The format name
// comes from the file extension as understood by the decoder, so it covers
// every format Load accepts; unrecognised extensions give "unknown".
func LoadImageInfo(img image.Image, path string) (*ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &ImageInfo{
		Width:         img.Bounds().Dx(),
		Height:        img.Bounds().Dy(),
		Format:        "unknown",
		FileSizeBytes: stat.Size(),
	}
	if f, err := imaging.FormatFromFilename(path); err == nil {
		info.Format = strings.ToLower(f.String())
	}
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		info.Grayscale = true
	}
	return info, nil
}
