package imgproc

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

const (
	testRows = 120
	testCols = 160
)

// texturedFrame returns a BGR frame with high local variance in every channel.
func texturedFrame(t *testing.T) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSize(testRows, testCols, gocv.MatTypeCV8UC3)
	for y := 0; y < testRows; y++ {
		for x := 0; x < testCols; x++ {
			for c := 0; c < 3; c++ {
				mat.SetUCharAt(y, x*3+c, uint8((x*37+y*91+c*53)%256))
			}
		}
	}
	return mat
}

func mirrored(mat gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.Flip(mat, &out, 1)
	return out
}

// regionBytes copies the pixels of rect out of mat.
func regionBytes(mat gocv.Mat, rect image.Rectangle) []byte {
	region := mat.Region(rect)
	defer region.Close()
	dense := region.Clone()
	defer dense.Close()
	return dense.ToBytes()
}

func variance(pix []byte) float64 {
	if len(pix) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pix {
		sum += float64(p)
	}
	mean := sum / float64(len(pix))

	var sq float64
	for _, p := range pix {
		d := float64(p) - mean
		sq += d * d
	}
	return sq / float64(len(pix))
}

// sharpness is the largest absolute difference between horizontally or vertically adjacent samples.
func sharpness(mat gocv.Mat, rect image.Rectangle) int {
	channels := mat.Channels()
	pix := regionBytes(mat, rect)
	w, h := rect.Dx(), rect.Dy()
	at := func(x, y, c int) int { return int(pix[(y*w+x)*channels+c]) }

	peak := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < channels; c++ {
				if x+1 < w {
					if d := abs(at(x+1, y, c) - at(x, y, c)); d > peak {
						peak = d
					}
				}
				if y+1 < h {
					if d := abs(at(x, y+1, c) - at(x, y, c)); d > peak {
						peak = d
					}
				}
			}
		}
	}
	return peak
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// fakeSource replays frames; a nil entry is a failed read, and reads past the end fail.
type fakeSource struct {
	frames []*gocv.Mat
	reads  int
	closed bool
}

func (s *fakeSource) Read(m *gocv.Mat) bool {
	i := s.reads
	s.reads++
	if i >= len(s.frames) || s.frames[i] == nil {
		return false
	}
	return s.frames[i].CopyTo(m) == nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

type fakeDetector struct {
	faces  []image.Rectangle
	calls  int
	closed bool
}

func (d *fakeDetector) Detect(gray gocv.Mat) []image.Rectangle {
	d.calls++
	return d.faces
}

func (d *fakeDetector) Close() error {
	d.closed = true
	return nil
}

// fakeDisplay keeps a copy of every shown frame and answers WaitKey from keys, then -1.
// A non-nil showErr makes IMShow fail without keeping the frame.
type fakeDisplay struct {
	shown   []gocv.Mat
	showErr error
	keys    []int
	waits   []int
	onWait  func()
	closed  bool
}

func (d *fakeDisplay) IMShow(img gocv.Mat) error {
	if d.showErr != nil {
		return d.showErr
	}
	d.shown = append(d.shown, img.Clone())
	return nil
}

func (d *fakeDisplay) WaitKey(delay int) int {
	d.waits = append(d.waits, delay)
	if d.onWait != nil {
		d.onWait()
	}
	if len(d.keys) == 0 {
		return -1
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

func (d *fakeDisplay) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDisplay) release() {
	for i := range d.shown {
		d.shown[i].Close()
	}
}
