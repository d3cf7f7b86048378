package frame

import (
	"fmt"
	"math"

	"redreel/internal/types"
)

// Cover computes the scale-to-cover plus center-crop that maps a source frame
// onto the output canvas: scale by max(tw/sw, th/sh), then trim the overflow
// dimension symmetrically. The result never letterboxes. Scaled dimensions are
// rounded up to even values because yuv420 encoders reject odd sizes.
func Cover(srcW, srcH, dstW, dstH int) (types.CropGeometry, error) {
	if srcW <= 0 || srcH <= 0 {
		return types.CropGeometry{}, fmt.Errorf("invalid source resolution %dx%d", srcW, srcH)
	}
	if dstW <= 0 || dstH <= 0 {
		return types.CropGeometry{}, fmt.Errorf("invalid target resolution %dx%d", dstW, dstH)
	}
	scale := math.Max(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	sw := evenCeil(float64(srcW)*scale, dstW)
	sh := evenCeil(float64(srcH)*scale, dstH)
	return types.CropGeometry{
		ScaleWidth:  sw,
		ScaleHeight: sh,
		CropX:       (sw - dstW) / 2,
		CropY:       (sh - dstH) / 2,
		Width:       dstW,
		Height:      dstH,
	}, nil
}

func evenCeil(v float64, min int) int {
	n := int(math.Ceil(v))
	if n%2 != 0 {
		n++
	}
	if n < min {
		n = min
	}
	return n
}
