//go:build !cgo

package detection

import (
	"errors"
	"image"
)

// Text requires cgo for the Tesseract bindings. Builds without cgo get
// this stub so the rest of the detection package stays usable.
func Text(_ image.Image, _ string) ([]image.Rectangle, error) {
	return nil, errors.New("text detection requires a cgo build with Tesseract installed")
}
