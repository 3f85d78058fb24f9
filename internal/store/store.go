// Package store persists processing results. Two backends share one
// interface: a directory of JSON files for local CLI use, and Postgres for
// the server deployment.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/veridata-labs/airlens-cli/internal/pipeline"
)

// SavedResult is a persisted processing run.
type SavedResult struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	CreatedAt time.Time                 `json:"created_at"`
	Result    *pipeline.ProcessedResult `json:"result"`
}

// Store persists and retrieves processing results.
type Store interface {
	Save(ctx context.Context, name string, res *pipeline.ProcessedResult) (*SavedResult, error)
	Load(ctx context.Context, id string) (*SavedResult, error)
	List(ctx context.Context) ([]SavedResult, error)
}

// ErrNotFound indicates no result exists under the requested id.
var ErrNotFound = errors.New("result not found")
