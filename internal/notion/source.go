package notion

import (
	"context"
	"fmt"
	"os"

	"habitchart/internal/engine"
)

// Source fetches the task and measure databases as engine rows.
type Source struct {
	client     *Client
	tasksDB    string
	measuresDB string
}

func NewSource(client *Client, tasksDB, measuresDB string) *Source {
	return &Source{client: client, tasksDB: tasksDB, measuresDB: measuresDB}
}

func (s *Source) FetchTasks(ctx context.Context) ([]engine.Row, error) {
	return s.fetch(ctx, s.tasksDB)
}

func (s *Source) FetchMeasures(ctx context.Context) ([]engine.Row, error) {
	return s.fetch(ctx, s.measuresDB)
}

func (s *Source) fetch(ctx context.Context, databaseID string) ([]engine.Row, error) {
	if databaseID == "" {
		return nil, fmt.Errorf("notion database id is not configured")
	}
	pages, err := s.client.QueryDatabase(ctx, databaseID)
	if err != nil {
		return nil, err
	}
	return DecodePages(pages), nil
}

// FileSource reads rows from saved query results (a JSON array of pages or a
// query response), for offline builds.
type FileSource struct {
	tasksPath    string
	measuresPath string
}

func NewFileSource(tasksPath, measuresPath string) *FileSource {
	return &FileSource{tasksPath: tasksPath, measuresPath: measuresPath}
}

func (s *FileSource) FetchTasks(ctx context.Context) ([]engine.Row, error) {
	return readRows(s.tasksPath)
}

func (s *FileSource) FetchMeasures(ctx context.Context) ([]engine.Row, error) {
	return readRows(s.measuresPath)
}

func readRows(path string) ([]engine.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	pages, err := ParsePages(data)
	if err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	return DecodePages(pages), nil
}
