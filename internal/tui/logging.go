package tui

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ajramos/mm3commander/internal/config"
)

// LogFileName is the log file created under the config directory
const LogFileName = config.AppName + ".log"

// OpenLogger opens the file logger, appending to path. An empty path logs to
// ~/.config/mm3commander/mm3commander.log. The caller closes the returned file.
func OpenLogger(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		dir := config.DefaultLogDir()
		if dir == "" {
			return nil, nil, fmt.Errorf("no home directory for the log file")
		}
		path = filepath.Join(dir, LogFileName)
	}
	path = config.ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(f, "["+config.AppName+"] ", log.LstdFlags|log.Lmicroseconds), f, nil
}
