package faroeste

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrSourceNotFound = errors.New("file not found")
	ErrSourceIO       = errors.New("I/O failure")
)

// ReadSource returns the full text at path. Failures wrap either
// ErrSourceNotFound or ErrSourceIO.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrSourceIO, path, err)
	}
	return string(data), nil
}
