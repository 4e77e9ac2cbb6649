package imgproc

import (
	"fmt"
	"time"
)

const (
	DefaultWindowName   = "Face Anonymizer"
	DefaultScaleFactor  = 1.1
	DefaultMinNeighbors = 4
	DefaultBlurKernel   = 99
	DefaultBlurSigma    = 30
	DefaultFrameDelay   = 7
	DefaultQuitKey      = 'q'
	DefaultReadTimeout  = 5 * time.Second
)

type Config struct {
	DeviceID     int           // Camera device index
	CascadePath  string        // Haar cascade XML used by the face detector
	ScaleFactor  float64       // Image shrink ratio between detection passes
	MinNeighbors int           // Overlapping candidates required before a face is reported
	BlurKernel   int           // Gaussian kernel width and height in pixels, odd
	BlurSigma    float64       // Gaussian standard deviation
	WindowName   string        // Title of the display window
	QuitKey      rune          // Key that stops the loop
	FrameDelay   int           // Milliseconds to wait for a keypress each iteration
	ReadTimeout  time.Duration // How long reads may keep failing before the camera is considered lost, 0 never gives up
	Debug        bool          // Toggles debug mode
}

// DefaultConfig returns the fixed settings of the anonymizer.
// CascadePath is left empty for the caller to resolve.
func DefaultConfig() Config {
	return Config{
		DeviceID:     0,
		ScaleFactor:  DefaultScaleFactor,
		MinNeighbors: DefaultMinNeighbors,
		BlurKernel:   DefaultBlurKernel,
		BlurSigma:    DefaultBlurSigma,
		WindowName:   DefaultWindowName,
		QuitKey:      DefaultQuitKey,
		FrameDelay:   DefaultFrameDelay,
		ReadTimeout:  DefaultReadTimeout,
	}
}

// Validate reports the first setting OpenCV would reject or that would stall the loop.
func (c Config) Validate() error {
	switch {
	case c.BlurKernel <= 0 || c.BlurKernel%2 == 0:
		return fmt.Errorf("%w: blur kernel must be odd and positive, got %d", ErrInvalidConfig, c.BlurKernel)
	case c.BlurSigma < 0:
		return fmt.Errorf("%w: blur sigma must not be negative, got %f", ErrInvalidConfig, c.BlurSigma)
	case c.ScaleFactor <= 1:
		return fmt.Errorf("%w: scale factor must be greater than 1, got %f", ErrInvalidConfig, c.ScaleFactor)
	case c.MinNeighbors < 0:
		return fmt.Errorf("%w: min neighbors must not be negative, got %d", ErrInvalidConfig, c.MinNeighbors)
	case c.FrameDelay <= 0:
		// WaitKey(0) blocks until a key is pressed
		return fmt.Errorf("%w: frame delay must be positive, got %d", ErrInvalidConfig, c.FrameDelay)
	case c.ReadTimeout < 0:
		return fmt.Errorf("%w: read timeout must not be negative, got %s", ErrInvalidConfig, c.ReadTimeout)
	}
	return nil
}
