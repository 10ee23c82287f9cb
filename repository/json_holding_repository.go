package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"stockplatform/model"
)

type portfolioFile struct {
	Holdings []model.Holding `json:"holdings"`
}

type JsonHoldingRepository struct {
	path string
}

func NewJsonHoldingRepository(path string) *JsonHoldingRepository {
	return &JsonHoldingRepository{path: path}
}

func (r *JsonHoldingRepository) Load(ctx context.Context) ([]model.Holding, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Holding{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	var doc portfolioFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode portfolio file: %w", err)
	}
	if doc.Holdings == nil {
		return []model.Holding{}, nil
	}
	return doc.Holdings, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target so a crash never leaves a half-written portfolio.
func (r *JsonHoldingRepository) Save(ctx context.Context, holdings []model.Holding) error {
	if holdings == nil {
		holdings = []model.Holding{}
	}
	raw, err := json.MarshalIndent(portfolioFile{Holdings: holdings}, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create portfolio directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".portfolio-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write portfolio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}
