// Package volfile writes the volume file read by the ALSA cdsp plugin.
package volfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrAlreadyExists is returned when the volume file is already present.
// A leftover file means an earlier run did not finish cleanly; it is never
// overwritten.
var ErrAlreadyExists = errors.New("volume file already exists")

// Format returns the record stored in the volume file: the volume and a
// fixed trailing field.
func Format(volume fmt.Stringer) string {
	return volume.String() + " 0"
}

// Write creates path and stores the volume record in it.
func Write(path string, volume fmt.Stringer) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644) //nolint:gosec // read by the audio plugin
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		}
		return fmt.Errorf("failed to create volume file: %w", err)
	}

	if _, err := f.WriteString(Format(volume)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write volume file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close volume file: %w", err)
	}
	return nil
}
