package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aakash/content-server/entity"
)

// ResizeProfile describes the target variant produced for one activity type.
type ResizeProfile struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Format  string `json:"type"`
	Quality int    `json:"quality"`
}

// ResizeConfig maps an activity type (post, comment) to its transform profile.
// The table is loaded once at startup from a JSON file; there is no reload.
type ResizeConfig map[entity.ActivityType]ResizeProfile

func LoadResizeConfig(path string) (ResizeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resize configuration %s: %w", path, err)
	}

	var cfg ResizeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resize configuration %s: %w", path, err)
	}
	if len(cfg) == 0 {
		return nil, fmt.Errorf("resize configuration %s contains no profiles", path)
	}
	return cfg, nil
}
