package golden

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadAllTestGroups loads every *.yaml suite in dir, sorted by name.
func LoadAllTestGroups(dir string) ([]*TestGroup, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("golden: list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("golden: no suites in %s", dir)
	}

	groups := make([]*TestGroup, 0, len(paths))
	for _, path := range paths {
		group, err := LoadTestGroup(path)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	// Sort by group name for consistent output
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	return groups, nil
}

// LoadTestGroup loads the cases of a single suite file.
func LoadTestGroup(path string) (*TestGroup, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("golden: open %s: %w", path, err)
	}
	defer file.Close()

	return decodeTestGroup(file, path)
}

func decodeTestGroup(r io.Reader, path string) (*TestGroup, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var cases []*TestCase
	if err := decoder.Decode(&cases); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("golden: %s is empty", path)
		}
		return nil, fmt.Errorf("golden: parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cases))
	for i, tc := range cases {
		if tc == nil || tc.ID == "" {
			return nil, fmt.Errorf("golden: %s: case %d has no id", path, i)
		}
		if seen[tc.ID] {
			return nil, fmt.Errorf("golden: %s: duplicate case id %q", path, tc.ID)
		}
		seen[tc.ID] = true
	}

	base := filepath.Base(path)
	return &TestGroup{
		Name:  strings.TrimSuffix(base, filepath.Ext(base)),
		Path:  path,
		Cases: cases,
	}, nil
}
