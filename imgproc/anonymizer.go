package imgproc

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/DaniruKun/face-anonymizer/internal/log"
	"gocv.io/x/gocv"
)

// Source delivers camera frames.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Display presents frames and polls the keyboard.
type Display interface {
	IMShow(img gocv.Mat) error
	WaitKey(delay int) int
	Close() error
}

var (
	_ Source  = (*gocv.VideoCapture)(nil)
	_ Display = (*gocv.Window)(nil)
)

type State int

const (
	StateRunning State = iota
	StateShuttingDown
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	fpsTextScale     = 1
	fpsTextThickness = 2
)

// FPSOrigin is where the FPS readout is drawn.
var FPSOrigin = image.Pt(10, 30)

// Anonymizer owns the camera, detector and window for one capture loop.
type Anonymizer struct {
	config   Config
	source   Source
	detector Detector
	display  Display
	fps      *FPSMeter
	now      func() time.Time
	logger   *slog.Logger
	state    State
}

// NewAnonymizer wires the handles together. Run takes ownership of source and display.
func NewAnonymizer(config Config, source Source, detector Detector, display Display) *Anonymizer {
	return &Anonymizer{
		config:   config,
		source:   source,
		detector: detector,
		display:  display,
		fps:      NewFPSMeter(nil),
		now:      time.Now,
		logger:   log.L(),
		state:    StateRunning,
	}
}

// WithLogger replaces the logger used by the loop.
func (a *Anonymizer) WithLogger(logger *slog.Logger) *Anonymizer {
	a.logger = logger
	return a
}

// WithFPSMeter replaces the frame rate meter.
func (a *Anonymizer) WithFPSMeter(meter *FPSMeter) *Anonymizer {
	a.fps = meter
	return a
}

// WithClock replaces the clock that times out a silent camera.
func (a *Anonymizer) WithClock(clock func() time.Time) *Anonymizer {
	a.now = clock
	return a
}

func (a *Anonymizer) State() State {
	return a.state
}

// Run loops over camera frames until the quit key is pressed, ctx is cancelled or the camera is lost.
// The source and display are closed before Run returns, whatever the reason.
func (a *Anonymizer) Run(ctx context.Context) error {
	if a.state == StateShuttingDown {
		return ErrShutDown
	}

	defer a.shutdown()

	frame := gocv.NewMat()
	defer frame.Close()

	gray := gocv.NewMat()
	defer gray.Close()

	quitKey := int(a.config.QuitKey) & 0xFF
	failures := 0
	lastFrame := a.now()

	a.fps.Reset()
	a.logger.Info("face anonymizer started", "quit_key", string(a.config.QuitKey))

	// Frame read loop
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("interrupted, stopping")
			return nil
		default:
		}

		if ok := a.source.Read(&frame); !ok || frame.Empty() {
			failures++
			a.logger.Warn("failed to read frame", "consecutive_failures", failures)
			if silent := a.now().Sub(lastFrame); a.config.ReadTimeout > 0 && silent >= a.config.ReadTimeout {
				return fmt.Errorf("%w: no frame for %s (%d failed reads)", ErrCameraLost, silent, failures)
			}
			continue
		}
		failures = 0
		lastFrame = a.now()

		faces, err := a.ProcessFrame(&frame, &gray)
		if err != nil {
			// A frame that may still hold raw faces is never shown
			a.logger.Warn("dropping frame", "error", err)
		} else {
			if len(faces) > 0 {
				a.logger.Debug("blurred faces", "count", len(faces))
			}

			fps := a.fps.Tick()
			if err := gocv.PutText(&frame, fmt.Sprintf("FPS: %.1f", fps), FPSOrigin, gocv.FontHersheySimplex, fpsTextScale, OverlayColor, fpsTextThickness); err != nil {
				a.logger.Warn("failed to draw FPS", "error", err)
			}

			if err := a.display.IMShow(frame); err != nil {
				return fmt.Errorf("show frame: %w", err)
			}
		}

		if key := a.display.WaitKey(a.config.FrameDelay); key >= 0 && key&0xFF == quitKey {
			a.logger.Info("quit key pressed, stopping")
			return nil
		}
	}
}

// ProcessFrame mirrors frame, detects faces on a gray copy and blurs them in frame.
// Returns the rectangles that were blurred, clipped to the frame.
// On error frame may hold unblurred faces and must not be shown.
func (a *Anonymizer) ProcessFrame(frame, gray *gocv.Mat) ([]image.Rectangle, error) {
	// Mirror for a selfie view
	if err := gocv.Flip(*frame, frame, 1); err != nil {
		return nil, fmt.Errorf("mirror frame: %w", err)
	}
	if err := gocv.CvtColor(*frame, gray, gocv.ColorBGRToGray); err != nil {
		return nil, fmt.Errorf("convert to gray: %w", err)
	}

	faces := ClipRects(a.detector.Detect(*gray), FrameBounds(*frame))
	if _, err := BlurRegions(frame, faces, a.config.BlurKernel, a.config.BlurSigma); err != nil {
		return nil, err
	}
	return faces, nil
}

func (a *Anonymizer) shutdown() {
	a.state = StateShuttingDown

	if err := a.source.Close(); err != nil {
		a.logger.Error("failed to release camera", "error", err)
	}
	if err := a.display.Close(); err != nil {
		a.logger.Error("failed to close window", "error", err)
	}
	a.logger.Info("resources cleaned up")
}
