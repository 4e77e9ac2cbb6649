package imgproc

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Detector finds faces in a single-channel image.
type Detector interface {
	// Detect returns face rectangles in the coordinates of gray
	Detect(gray gocv.Mat) []image.Rectangle

	// Close releases the model
	Close() error
}

// CascadeDetector runs a Haar cascade with fixed multi-scale parameters.
type CascadeDetector struct {
	classifier   gocv.CascadeClassifier
	scaleFactor  float64
	minNeighbors int
}

// NewCascadeDetector loads the cascade at path.
func NewCascadeDetector(path string, scaleFactor float64, minNeighbors int) (*CascadeDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrDetectorLoad, path)
	}

	return &CascadeDetector{
		classifier:   classifier,
		scaleFactor:  scaleFactor,
		minNeighbors: minNeighbors,
	}, nil
}

func (d *CascadeDetector) Detect(gray gocv.Mat) []image.Rectangle {
	// Zero min/max size lets the cascade sweep every scale
	return d.classifier.DetectMultiScaleWithParams(gray, d.scaleFactor, d.minNeighbors, 0, image.Point{}, image.Point{})
}

func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}
