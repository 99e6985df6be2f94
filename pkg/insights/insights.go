package insights

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/draftcheck/pkg/draft"
)

// FieldProfile summarizes one front-matter key across a drafts
// directory.
type FieldProfile struct {
	Key           string         `json:"key"`
	PresenceCount int            `json:"presence_count"`
	PresencePct   float64        `json:"presence_pct"`
	EmptyCount    int            `json:"empty_count"`
	TopValues     map[string]int `json:"top_values"`
}

// Profile aggregates front-matter usage across one drafts directory.
type Profile struct {
	TotalFiles  int            `json:"total_files"`
	ParseErrors int            `json:"parse_errors"`
	Categories  map[string]int `json:"categories"`
	Fields      []FieldProfile `json:"fields"`
}

// Scan parses the front matter of every draft under dir and profiles
// it. Drafts that fail to parse are counted and skipped.
func Scan(dir string) (*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	p := &Profile{Categories: make(map[string]int)}
	presence := make(map[string]int)
	empty := make(map[string]int)
	values := make(map[string]map[string]int)
	parsed := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		p.TotalFiles++

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			p.ParseErrors++
			continue
		}
		d, err := draft.Parse(path, data)
		if err != nil {
			p.ParseErrors++
			continue
		}
		parsed++

		if cat := strings.ToLower(strings.TrimSpace(d.Category)); cat != "" {
			p.Categories[cat]++
		}
		for key, value := range d.Metadata {
			presence[key]++
			if strings.TrimSpace(value) == "" {
				empty[key]++
				continue
			}
			if values[key] == nil {
				values[key] = make(map[string]int)
			}
			values[key][value]++
		}
	}

	keys := make([]string, 0, len(presence))
	for k := range presence {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	denom := parsed
	if denom == 0 {
		denom = 1
	}
	for _, key := range keys {
		p.Fields = append(p.Fields, FieldProfile{
			Key:           key,
			PresenceCount: presence[key],
			PresencePct:   float64(presence[key]) / float64(denom) * 100,
			EmptyCount:    empty[key],
			TopValues:     values[key],
		})
	}
	return p, nil
}

// Render produces the stdout summary table.
func (p *Profile) Render() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Front-matter insights (%d files, %d parse errors)\n", p.TotalFiles, p.ParseErrors))

	sb.WriteString("\nCategories:\n")
	for _, cat := range sortedByCount(p.Categories) {
		sb.WriteString(fmt.Sprintf("  %-20s %d\n", cat, p.Categories[cat]))
	}

	sb.WriteString("\nFields:\n")
	sb.WriteString(fmt.Sprintf("  %-20s %8s %8s %7s\n", "key", "present", "empty", "pct"))
	for _, f := range p.Fields {
		sb.WriteString(fmt.Sprintf("  %-20s %8d %8d %6.1f%%\n", f.Key, f.PresenceCount, f.EmptyCount, f.PresencePct))
	}
	return sb.String()
}

// WriteJSON exports the profile as an indented JSON document.
func (p *Profile) WriteJSON(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// WriteCSV exports the per-field profile as a CSV table.
func (p *Profile) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"key", "presence_count", "presence_pct", "empty_count"}); err != nil {
		return err
	}
	for _, field := range p.Fields {
		record := []string{
			field.Key,
			fmt.Sprintf("%d", field.PresenceCount),
			fmt.Sprintf("%.2f", field.PresencePct),
			fmt.Sprintf("%d", field.EmptyCount),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func sortedByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
