package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"quote-run-service/internal/domain"
)

// PoolLoader reads a quotes.json document from disk.
type PoolLoader struct {
	path string
}

func NewPoolLoader(path string) *PoolLoader {
	return &PoolLoader{path: path}
}

// LoadPool ignores poolID; the file holds a single pool.
func (l *PoolLoader) LoadPool(_ context.Context, _ string) (domain.Pool, error) {
	raw, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Pool{}, fmt.Errorf("%w: %s", domain.ErrPoolNotFound, l.path)
	}
	if err != nil {
		return domain.Pool{}, fmt.Errorf("read pool: %w", err)
	}
	var pool domain.Pool
	if err := json.Unmarshal(raw, &pool); err != nil {
		return domain.Pool{}, fmt.Errorf("unmarshal pool: %w", err)
	}
	return pool, nil
}
