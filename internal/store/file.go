package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wyndham/grant-radar/internal/models"
)

// candidatePaths are probed, in order, when no data path is given.
var candidatePaths = []string{
	"grants.json",
	filepath.Join("data", "grants.json"),
	"grants.jsonl",
	filepath.Join("data", "grants.jsonl"),
}

// FindDataFile returns the first existing catalog file, preferring the
// explicit path when given.
func FindDataFile(preferred string) (string, error) {
	candidates := candidatePaths
	if preferred != "" {
		candidates = append([]string{preferred}, candidates...)
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("no catalog file found (tried %s)", strings.Join(candidates, ", "))
}

// FileCatalog reads and writes a catalog file. A ".jsonl" extension selects
// one JSON object per line; anything else is a JSON array.
type FileCatalog struct {
	Path string
}

func (f *FileCatalog) All(ctx context.Context) ([]models.Opportunity, error) {
	return Load(f.Path)
}

func (f *FileCatalog) ReplaceAll(ctx context.Context, items []models.Opportunity) error {
	return Save(f.Path, items)
}

// Load reads a whole catalog. A corrupt container fails the batch as a
// single error; nothing is partially loaded.
func Load(path string) ([]models.Opportunity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".jsonl") {
		var items []models.Opportunity
		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			var o models.Opportunity
			if err := json.Unmarshal([]byte(text), &o); err != nil {
				return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
			}
			items = append(items, o)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return items, nil
	}

	var items []models.Opportunity
	dec := json.NewDecoder(file)
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}

// Save writes the catalog back in the format the path's extension implies.
func Save(path string, items []models.Opportunity) error {
	var buf strings.Builder
	if strings.HasSuffix(path, ".jsonl") {
		enc := json.NewEncoder(&buf)
		for i := range items {
			if err := enc.Encode(items[i]); err != nil {
				return fmt.Errorf("encoding record %d: %w", i, err)
			}
		}
	} else {
		if items == nil {
			items = []models.Opportunity{}
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding catalog: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
