package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ai-tutor/internal/auth"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	u := auth.User{ID: 1, FirstName: "Alice"}

	tr := Transcript{}.Append(RoleUser, "what is 2+2?").Append(RoleModel, "think about pairs of apples")
	if err := s.Save(u, tr); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := s.Load(u)
	if len(got) != 2 {
		t.Fatalf("want 2 turns, got %d", len(got))
	}
	if got[0].Role != RoleUser || got[0].Parts != "what is 2+2?" {
		t.Fatalf("unexpected turn 0: %+v", got[0])
	}
	if got[1].Role != RoleModel {
		t.Fatalf("unexpected turn 1: %+v", got[1])
	}
}

func TestStore_LoadMissingReturnsEmpty(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	got := s.Load(auth.User{ID: 404, FirstName: "Nobody"})
	if len(got) != 0 {
		t.Fatalf("want empty transcript, got %d turns", len(got))
	}
}

func TestStore_LoadCorruptReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(dir)
	u := auth.User{ID: 7, FirstName: "Bob"}
	if err := os.WriteFile(filepath.Join(dir, "chat_history_7_Bob.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if got := s.Load(u); len(got) != 0 {
		t.Fatalf("corrupt history must degrade to empty, got %d turns", len(got))
	}
}

func TestStore_ArchiveRotatesFile(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(dir)
	u := auth.User{ID: 5, FirstName: "Eve"}

	if err := s.Save(u, Transcript{}.Append(RoleUser, "hi")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Archive(u); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if got := s.Load(u); len(got) != 0 {
		t.Fatalf("load after archive must be empty, got %d turns", len(got))
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "chat_history_5_Eve_*.json"))
	if len(matches) != 1 {
		t.Fatalf("want 1 archived file, got %v", matches)
	}
	if _, ok := archiveStamp(matches[0]); !ok {
		t.Fatalf("archived name lacks a parseable timestamp: %s", matches[0])
	}
}

func TestStore_ArchiveWithoutHistoryIsNoop(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	if err := s.Archive(auth.User{ID: 9, FirstName: "Ghost"}); err != nil {
		t.Fatalf("archive on missing file must be a no-op: %v", err)
	}
}

func TestStore_RenamedUserStartsFresh(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	if err := s.Save(auth.User{ID: 3, FirstName: "Sam"}, Transcript{}.Append(RoleUser, "q")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// documented behavior: the storage key includes the display name
	if got := s.Load(auth.User{ID: 3, FirstName: "Samuel"}); len(got) != 0 {
		t.Fatalf("renamed user must start with empty history, got %d turns", len(got))
	}
}

func TestStore_PruneArchives(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewStore(dir)

	old := time.Now().Add(-72 * time.Hour).Format(archiveTimeLayout)
	fresh := time.Now().Format(archiveTimeLayout)
	for _, name := range []string{
		"chat_history_1_A_" + old + ".json",
		"chat_history_2_B_" + fresh + ".json",
		"chat_history_3_C.json", // live transcript, never pruned
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	n, err := s.PruneArchives(24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("want 1 pruned, got %d", n)
	}
	remaining, _ := filepath.Glob(filepath.Join(dir, "chat_history_*.json"))
	if len(remaining) != 2 {
		t.Fatalf("unexpected survivors: %v", remaining)
	}
}
