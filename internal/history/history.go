// Package history persists one conversation transcript per user as a JSON
// file of {role, parts} records. Files are keyed by (user id, first name);
// a user who changes their Telegram first name starts over with an empty
// transcript and the old file stays on disk. That keying is deliberate
// documented behavior, inherited from the deployed bot.
package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ai-tutor/internal/auth"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

const archiveTimeLayout = "20060102150405"

// Turn is one immutable message in a transcript.
type Turn struct {
	Role  string `json:"role"`
	Parts string `json:"parts"`
}

type Transcript []Turn

func (t Transcript) Append(role, text string) Transcript {
	return append(t, Turn{Role: role, Parts: text})
}

// Store owns the transcript files under dir. The mutex serializes file
// access within this process; it does not span a caller's
// load-converse-save window, so two in-flight messages from the same user
// race and the later save wins. Accepted for the one-human-typing case.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure history dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(u auth.User) string {
	return filepath.Join(s.dir, fmt.Sprintf("chat_history_%d_%s.json", u.ID, u.FirstName))
}

// Load returns the persisted transcript for u, or an empty transcript when
// none exists or the file cannot be read or parsed. Degrading to empty is
// a policy choice: a corrupt history must not block the conversation.
func (s *Store) Load(u auth.User) Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(u))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("history: read %s: %v", s.path(u), err)
		}
		return Transcript{}
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		log.Printf("history: parse %s: %v", s.path(u), err)
		return Transcript{}
	}
	return t
}

// Save overwrites the persisted transcript for u.
func (s *Store) Save(u auth.User, t Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	if err := os.WriteFile(s.path(u), data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Archive renames u's transcript aside with a sortable timestamp suffix so
// the next Load starts empty. Archiving a user with no transcript is a
// no-op.
func (s *Store) Archive(u auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.path(u)
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat transcript: %w", err)
	}
	stamp := time.Now().Format(archiveTimeLayout)
	archived := strings.TrimSuffix(p, ".json") + "_" + stamp + ".json"
	if err := os.Rename(p, archived); err != nil {
		return fmt.Errorf("archive transcript: %w", err)
	}
	return nil
}

// PruneArchives deletes archived transcripts older than maxAge, judged by
// the timestamp embedded in the filename. Live transcripts are never
// touched. Returns the number of files removed.
func (s *Store) PruneArchives(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches, err := filepath.Glob(filepath.Join(s.dir, "chat_history_*.json"))
	if err != nil {
		return 0, fmt.Errorf("glob archives: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, p := range matches {
		ts, ok := archiveStamp(p)
		if !ok {
			continue
		}
		if ts.Before(cutoff) {
			if err := os.Remove(p); err != nil {
				log.Printf("history: prune %s: %v", p, err)
				continue
			}
			removed++
		}
	}
	return removed, nil
}

// archiveStamp extracts the trailing _YYYYMMDDHHMMSS suffix, if any.
func archiveStamp(path string) (time.Time, bool) {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	i := strings.LastIndex(name, "_")
	if i < 0 {
		return time.Time{}, false
	}
	suffix := name[i+1:]
	if len(suffix) != len(archiveTimeLayout) {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(archiveTimeLayout, suffix, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
