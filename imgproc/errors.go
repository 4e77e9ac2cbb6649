package imgproc

import "errors"

var (
	// ErrDetectorLoad is returned when the cascade file is missing or unreadable.
	ErrDetectorLoad = errors.New("could not load face cascade classifier")

	// ErrCameraOpen is returned when the camera device cannot be opened.
	ErrCameraOpen = errors.New("could not open camera")

	// ErrCameraLost is returned when too many consecutive frame reads fail.
	ErrCameraLost = errors.New("camera stopped delivering frames")

	// ErrShutDown is returned by Run once the anonymizer has released its handles.
	ErrShutDown = errors.New("anonymizer already shut down")

	ErrInvalidConfig = errors.New("invalid config")
)
