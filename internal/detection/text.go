//go:build cgo

package detection

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Text finds word bounding boxes via Tesseract OCR, for redacting
// printed text such as names or license plates. lang is a Tesseract
// language code ("eng", "deu", ...); the corresponding trained data
// must be installed on the system.
//
// Boxes are returned in Tesseract's reading order. Words Tesseract is
// less than 30% confident about are dropped as noise.
func Text(img image.Image, lang string) ([]image.Rectangle, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return nil, fmt.Errorf("failed to set OCR language %q: %w", lang, err)
		}
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set OCR image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to get text bounding boxes: %w", err)
	}

	rects := make([]image.Rectangle, 0, len(boxes))
	for _, box := range boxes {
		if box.Confidence < 30 {
			continue
		}
		rects = append(rects, box.Box)
	}
	return rects, nil
}
