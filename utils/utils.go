package utils

import (
	"errors"
	"os"
	"path/filepath"
)

// FrontalFaceCascade is the stock OpenCV frontal face model.
const FrontalFaceCascade = "haarcascade_frontalface_default.xml"

// CascadeDirs lists where cascade files are looked up, in order.
// The first entry is relative to the working directory so a checkout can ship its own copy.
var CascadeDirs = []string{
	filepath.Join("resources", "haarcascades"),
	"/usr/share/opencv4/haarcascades",
	"/usr/local/share/opencv4/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
	"/usr/share/opencv/haarcascades",
	"/usr/local/share/opencv/haarcascades",
}

// GetCascadePath returns the path of the named cascade file in the first of CascadeDirs that has it.
func GetCascadePath(name string) (string, error) {
	return FindCascade(name, CascadeDirs...)
}

// FindCascade returns the first dirs/name that exists as a regular file.
func FindCascade(name string, dirs ...string) (string, error) {
	if name == "" {
		return "", errors.New("empty cascade name")
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.New("cascade not found: " + name)
}
