package imgproc

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// FrameBounds returns the rectangle covering all of mat.
func FrameBounds(mat gocv.Mat) image.Rectangle {
	return image.Rect(0, 0, mat.Cols(), mat.Rows())
}

// ClipRects intersects every rect with bounds and drops the ones left empty.
func ClipRects(rects []image.Rectangle, bounds image.Rectangle) []image.Rectangle {
	clipped := make([]image.Rectangle, 0, len(rects))
	for _, rect := range rects {
		rect = rect.Canon().Intersect(bounds)
		if rect.Empty() {
			continue
		}
		clipped = append(clipped, rect)
	}
	return clipped
}

// BlurRegions replaces every rect of frame with a Gaussian blur of itself, in place.
// ksize must be odd. Returns the number of regions blurred before the first failure.
func BlurRegions(frame *gocv.Mat, rects []image.Rectangle, ksize int, sigma float64) (int, error) {
	var blurred int
	for _, rect := range ClipRects(rects, FrameBounds(*frame)) {
		// The region shares pixels with frame, so blurring it into itself writes through
		region := frame.Region(rect)
		err := gocv.GaussianBlur(region, &region, image.Pt(ksize, ksize), sigma, sigma, gocv.BorderDefault)
		region.Close()
		if err != nil {
			return blurred, fmt.Errorf("blur region %v: %w", rect, err)
		}
		blurred++
	}
	return blurred, nil
}
