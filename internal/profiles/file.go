package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a profile from a YAML or JSON file and validates it.
// Files ending in .json are decoded as JSON; everything else as YAML.
func LoadFile(path string) (CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CandidateProfile{}, fmt.Errorf("read profile: %w", err)
	}

	var p CandidateProfile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return CandidateProfile{}, fmt.Errorf("decode profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return CandidateProfile{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return p, nil
}
