package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ncruces/zenity"
)

func screenshotName(now time.Time) string {
	return fmt.Sprintf("blackhole-%s.png", now.Format("20060102-150405.000"))
}

// screenshotPath picks where the next screenshot goes. With dialog set the
// user chooses; an empty path with a nil error means they cancelled.
func screenshotPath(dir string, dialog bool, now time.Time) (string, error) {
	path := filepath.Join(dir, screenshotName(now))
	if !dialog {
		return path, nil
	}

	chosen, err := zenity.SelectFileSave(
		zenity.Title("Save Screenshot"),
		zenity.Filename(path),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	if filepath.Ext(chosen) == "" {
		chosen += ".png"
	}
	return chosen, nil
}

func writeScreenshot(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
