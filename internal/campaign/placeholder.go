// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// placeholderPNG renders a flat neutral-grey PNG at the channel's aspect
// ratio, used when the image model answers without inline image data so the
// asset still has something to show and to animate against.
func placeholderPNG(aspectRatio string) ([]byte, string, error) {
	w, h := 1280, 720
	if aspectRatio == "1:1" {
		w, h = 720, 720
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	grey := color.RGBA{R: 0xd4, G: 0xd4, B: 0xd8, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, grey)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}
