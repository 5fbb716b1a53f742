package platform

import (
	"errors"
	"runtime"
	"strings"
	"sync"
)

// Platform is one of the operating systems procmon knows how to drive.
type Platform int

const (
	Unknown Platform = iota
	Windows
	Linux
	Mac
)

// ErrUnsupported is returned when the host maps to Unknown.
var ErrUnsupported = errors.New("unsupported platform")

func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	case Mac:
		return "mac"
	default:
		return "unknown"
	}
}

// Unix reports whether the platform uses ps and kill.
func (p Platform) Unix() bool {
	return p == Linux || p == Mac
}

// Detect maps a GOOS value to a Platform.
func Detect(goos string) Platform {
	switch strings.ToLower(goos) {
	case "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return Mac
	default:
		return Unknown
	}
}

var (
	current     Platform
	currentOnce sync.Once
)

// Current returns the host platform, detected on first use.
func Current() Platform {
	currentOnce.Do(func() {
		current = Detect(runtime.GOOS)
	})
	return current
}
