package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
	"github.com/veridata-labs/airlens-cli/internal/utils"
)

// FSStore keeps one JSON file per result in a directory. Writes are atomic;
// filenames are the result id.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

func (s *FSStore) Save(_ context.Context, name string, res *pipeline.ProcessedResult) (*SavedResult, error) {
	if err := utils.EnsureDir(s.dir); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	saved := &SavedResult{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Result:    res,
	}
	data, err := utils.PrettyJSON(saved)
	if err != nil {
		return nil, err
	}
	if err := utils.SafeWriteFile(s.path(saved.ID), data); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *FSStore) Load(_ context.Context, id string) (*SavedResult, error) {
	b, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("read result: %w", err)
	}
	var saved SavedResult
	if err := json.Unmarshal(b, &saved); err != nil {
		return nil, fmt.Errorf("parse result: %w", err)
	}
	return &saved, nil
}

// List returns saved results newest first. Result payloads are included;
// callers listing large stores should show metadata only.
func (s *FSStore) List(_ context.Context) ([]SavedResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SavedResult{}, nil
		}
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	out := []SavedResult{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		saved, err := s.Load(context.Background(), id)
		if err != nil {
			continue
		}
		out = append(out, *saved)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FSStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
