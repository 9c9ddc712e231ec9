package prefs

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("OpenPath() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestVolume_DefaultWhenUnset(t *testing.T) {
	s := openTestStore(t)

	v, err := s.Volume()
	if err != nil {
		t.Fatalf("Volume() error: %v", err)
	}
	if v != defaultVolume {
		t.Errorf("Volume() = %d, want %d", v, defaultVolume)
	}
}

func TestSetVolume_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetVolume(42); err != nil {
		t.Fatalf("SetVolume() error: %v", err)
	}

	v, err := s.Volume()
	if err != nil {
		t.Fatalf("Volume() error: %v", err)
	}
	if v != 42 {
		t.Errorf("Volume() = %d, want 42", v)
	}
}

func TestSetVolume_Clamps(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetVolume(180); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Volume(); v != 100 {
		t.Errorf("Volume() = %d after SetVolume(180), want 100", v)
	}

	if err := s.SetVolume(-5); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Volume(); v != 0 {
		t.Errorf("Volume() = %d after SetVolume(-5), want 0", v)
	}
}

func TestVolume_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetVolume(73); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	if v, _ := s2.Volume(); v != 73 {
		t.Errorf("Volume() = %d after reopen, want 73", v)
	}
}
