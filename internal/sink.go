package internal

import (
	"fmt"
	"go.uber.org/zap"
	"io"
	"os"
	"path/filepath"
)

// Sink delivers a finished report either to Stdout or, when Path is set, to a file.
// Reports are rendered in full before Commit so a failure never leaves partial output behind.
type Sink struct {
	Stdout io.Writer
	Path   string
	Logger *zap.Logger // optional
}

func (s Sink) Commit(report string) error {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	if s.Path == "" {
		n, err := io.WriteString(s.Stdout, report)
		s.Logger.Debug("wrote report", zap.String("destination", "stdout"), zap.Int("bytes", n))
		return err
	}
	if err := writeFileAtomic(s.Path, []byte(report)); err != nil {
		return err
	}
	s.Logger.Debug("wrote report", zap.String("destination", s.Path), zap.Int("bytes", len(report)))
	return nil
}

// writeFileAtomic writes to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
