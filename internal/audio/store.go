package audio

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/notewell/minutes/internal/logx"
)

// Store holds uploaded audio in a temp directory for the duration of one
// transcription call.
type Store struct {
	dir string
}

// NewStore creates the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string { return s.dir }

// Save writes content to a uniquely named file ("audio_<id><ext>") and
// returns its path.
func (s *Store) Save(content []byte, ext string) (string, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	path := filepath.Join(s.dir, "audio_"+id+ext)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", err
	}
	logx.Log.Debug().Str("path", path).Int("bytes", len(content)).Msg("saved temp audio file")
	return path, nil
}

// Remove deletes a previously saved file.
func (s *Store) Remove(path string) error {
	return os.Remove(path)
}

// SweepStale deletes audio files older than maxAge and reports how many were
// removed. Files not written by Save are left alone.
func (s *Store) SweepStale(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	deleted := 0
	now := time.Now()
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "audio_") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			if err := os.Remove(filepath.Join(s.dir, e.Name())); err == nil {
				deleted++
			}
		}
	}
	if deleted > 0 {
		logx.Log.Info().Int("deleted", deleted).Msg("cleaned up stale audio files")
	}
	return deleted, nil
}

// ExtAllowed reports whether the file's extension is in the allowed list.
// Comparison is case-insensitive.
func ExtAllowed(name string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
