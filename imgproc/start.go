package imgproc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DaniruKun/face-anonymizer/internal/log"
	"gocv.io/x/gocv"
)

// Devices opens the three resources the loop needs.
type Devices struct {
	OpenDetector func(config Config) (Detector, error)
	OpenSource   func(config Config) (Source, error)
	OpenDisplay  func(config Config) (Display, error)
}

// DefaultDevices opens the cascade, the camera and a window through gocv.
func DefaultDevices() Devices {
	return Devices{
		OpenDetector: func(config Config) (Detector, error) {
			detector, err := NewCascadeDetector(config.CascadePath, config.ScaleFactor, config.MinNeighbors)
			if err != nil {
				return nil, err
			}
			return detector, nil
		},
		OpenSource: func(config Config) (Source, error) {
			webcam, err := gocv.OpenVideoCapture(config.DeviceID)
			if err != nil {
				// The capture is allocated even when the device fails to open
				if webcam != nil {
					webcam.Close()
				}
				return nil, fmt.Errorf("%w %d: %v", ErrCameraOpen, config.DeviceID, err)
			}
			if !webcam.IsOpened() {
				webcam.Close()
				return nil, fmt.Errorf("%w %d", ErrCameraOpen, config.DeviceID)
			}
			return webcam, nil
		},
		OpenDisplay: func(config Config) (Display, error) {
			return gocv.NewWindow(config.WindowName), nil
		},
	}
}

// Start opens the detector, then the camera, then the window, and runs the loop until it stops.
// Nothing is opened after a failure, and everything opened is released before Start returns.
func Start(ctx context.Context, config Config, devices Devices, logger *slog.Logger) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if logger == nil {
		logger = log.L()
	}

	detector, err := devices.OpenDetector(config)
	if err != nil {
		return err
	}
	defer detector.Close()
	logger.Debug("face detector loaded", "cascade", config.CascadePath)

	source, err := devices.OpenSource(config)
	if err != nil {
		return err
	}
	logger.Debug("camera opened", "device", config.DeviceID)

	display, err := devices.OpenDisplay(config)
	if err != nil {
		source.Close()
		return fmt.Errorf("could not open window: %w", err)
	}

	return NewAnonymizer(config, source, detector, display).WithLogger(logger).Run(ctx)
}
