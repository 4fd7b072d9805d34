// ABOUTME: Loads heuristic table extensions from YAML files
// ABOUTME: File entries are appended to the built-in MIME types, labels and paths

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sgacode/rss-finder/core/domain"
)

// LoadHeuristics returns the built-in heuristics extended with the tables in
// the YAML file at path. An empty path returns the built-in tables.
func LoadHeuristics(path string) (domain.Heuristics, error) {
	defaults := domain.DefaultHeuristics()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Heuristics{}, fmt.Errorf("could not read heuristics file: %w", err)
	}

	var extra domain.Heuristics
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return domain.Heuristics{}, fmt.Errorf("could not parse heuristics file: %w", err)
	}

	return defaults.Merge(extra), nil
}
