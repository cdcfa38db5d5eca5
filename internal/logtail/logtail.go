// Package logtail prints and follows the agent's launchd log files.
package logtail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/conn-castle/lethe-installer/internal/logger"
	"github.com/conn-castle/lethe-installer/internal/messages"
)

// tailWindow bounds how much of the file end is read to find the last lines.
const tailWindow int64 = 256 * 1024

// Tail returns up to n trailing lines of path and the file size it read up to.
// A missing file yields no lines and offset zero.
func Tail(path string, n int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf(messages.LogtailOpenFmt, path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf(messages.LogtailOpenFmt, path, err)
	}
	size := info.Size()
	start := size - tailWindow
	if start < 0 {
		start = 0
	}
	buf := make([]byte, size-start)
	if _, err := file.ReadAt(buf, start); err != nil && !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf(messages.LogtailReadFmt, path, err)
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" || n <= 0 {
		return nil, size, nil
	}
	lines := strings.Split(text, "\n")
	if start > 0 && len(lines) > 1 {
		// The first line of a partial window is likely cut.
		lines = lines[1:]
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, size, nil
}

// Follow copies data appended to path after offset into w until ctx is done.
// A file that shrinks is treated as rotated and read from the start.
func Follow(ctx context.Context, path string, offset int64, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf(messages.LogtailWatchFmt, path, err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf(messages.LogtailWatchFmt, dir, err)
	}

	log := logger.WithComponent("logtail")
	log.Debug().Str("path", path).Int64("offset", offset).Msg("Following log")
	filename := filepath.Base(path)

	// Catch anything written between Tail and the watch being registered.
	offset, err = copyFrom(path, offset, w)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			offset, err = copyFrom(path, offset, w)
			if err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Str("path", path).Msg("Log watcher error")
		}
	}
}

// copyFrom writes path's bytes after offset to w and returns the new offset.
func copyFrom(path string, offset int64, w io.Writer) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return offset, fmt.Errorf(messages.LogtailOpenFmt, path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf(messages.LogtailOpenFmt, path, err)
	}
	if info.Size() < offset {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf(messages.LogtailReadFmt, path, err)
	}
	n, err := io.Copy(w, file)
	if err != nil {
		return offset + n, fmt.Errorf(messages.LogtailReadFmt, path, err)
	}
	return offset + n, nil
}
