// Package filestore persists the in-memory dataset as one JSON file per
// collection. Every mutation rewrites all files.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/memory"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	teamsFile       = "teams.json"
	usersFile       = "users.json"
	challengesFile  = "challenges.json"
	scoresFile      = "scores.json"
	activityFile    = "activity.json"
	submissionsFile = "submissions.json"
	countersFile    = "counters.json"
)

type Store struct {
	dir string
	mem *memory.Store
}

// Open loads any existing files under dir and returns a store that writes
// back on every mutation. The directory is created when missing.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	s := &Store{dir: dir, mem: memory.NewStore()}

	var d memory.Dataset
	loaders := []struct {
		name string
		into any
	}{
		{teamsFile, &d.Teams},
		{usersFile, &d.Users},
		{challengesFile, &d.Challenges},
		{scoresFile, &d.Scores},
		{activityFile, &d.Activities},
		{submissionsFile, &d.Submissions},
		{countersFile, &d.Counters},
	}
	for _, l := range loaders {
		if err := s.read(l.name, l.into); err != nil {
			return nil, err
		}
	}
	s.mem.Load(d)
	s.mem.OnMutation = s.write

	logging.Log.Infof("STORAGE: json store at %s loaded %d teams, %d scores", dir, len(d.Teams), len(d.Scores))
	return s, nil
}

func (s *Store) Repository() *storage.Repository {
	repo := s.mem.Repository()
	repo.Mode = storage.ModeFile
	return repo
}

func (s *Store) read(name string, into any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(d memory.Dataset) error {
	files := []struct {
		name string
		data any
	}{
		{teamsFile, nonNil(d.Teams)},
		{usersFile, nonNil(d.Users)},
		{challengesFile, nonNil(d.Challenges)},
		{scoresFile, nonNil(d.Scores)},
		{activityFile, nonNil(d.Activities)},
		{submissionsFile, nonNil(d.Submissions)},
		{countersFile, d.Counters},
	}
	for _, f := range files {
		if err := s.writeFile(f.name, f.data); err != nil {
			logging.Log.Errorf("STORAGE: failed to write %s: %v", f.name, err)
			return err
		}
	}
	return nil
}

// writeFile replaces name atomically through a temp file and rename.
func (s *Store) writeFile(name string, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
