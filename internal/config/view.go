// Package config holds the runtime-tunable settings for the star view.
//
// The JSON schema matches the /api/view/params endpoint so the same file can
// be used for startup configuration and runtime updates. Fields omitted from
// the JSON keep their defaults via the Get* accessors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ViewConfig represents the root configuration for the star coordinates
// view. All fields are optional.
type ViewConfig struct {
	// Point size params
	InitialPointSize *float64 `json:"initial_point_size,omitempty"`
	FinalPointSize   *float64 `json:"final_point_size,omitempty"`

	// Animation params
	AnimationFrameInterval *string `json:"animation_frame_interval,omitempty"` // duration string like "40ms"
	AnimationMaxTime       *string `json:"animation_max_time,omitempty"`       // duration string like "2s"

	// Clustering params
	ClusterCount *int `json:"cluster_count,omitempty"`

	// Display params
	Palette *string `json:"palette,omitempty"`

	// Server params
	ListenAddr *string `json:"listen_addr,omitempty"`
	DataDir    *string `json:"data_dir,omitempty"`
}

// EmptyViewConfig returns a ViewConfig with all fields unset.
func EmptyViewConfig() *ViewConfig {
	return &ViewConfig{}
}

// LoadViewConfig loads a ViewConfig from a JSON file. Partial configs are
// safe: omitted fields keep their defaults.
func LoadViewConfig(path string) (*ViewConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyViewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *ViewConfig) Validate() error {
	if c.InitialPointSize != nil && *c.InitialPointSize < 0 {
		return fmt.Errorf("initial_point_size must be non-negative, got %f", *c.InitialPointSize)
	}
	if c.FinalPointSize != nil && *c.FinalPointSize < 0 {
		return fmt.Errorf("final_point_size must be non-negative, got %f", *c.FinalPointSize)
	}
	if c.AnimationFrameInterval != nil && *c.AnimationFrameInterval != "" {
		if _, err := time.ParseDuration(*c.AnimationFrameInterval); err != nil {
			return fmt.Errorf("invalid animation_frame_interval '%s': %w", *c.AnimationFrameInterval, err)
		}
	}
	if c.AnimationMaxTime != nil && *c.AnimationMaxTime != "" {
		if _, err := time.ParseDuration(*c.AnimationMaxTime); err != nil {
			return fmt.Errorf("invalid animation_max_time '%s': %w", *c.AnimationMaxTime, err)
		}
	}
	if c.ClusterCount != nil && *c.ClusterCount < 1 {
		return fmt.Errorf("cluster_count must be >= 1, got %d", *c.ClusterCount)
	}
	return nil
}

// GetInitialPointSize returns the initial_point_size value or the default.
func (c *ViewConfig) GetInitialPointSize() float64 {
	if c.InitialPointSize == nil {
		return 4
	}
	return *c.InitialPointSize
}

// GetFinalPointSize returns the final_point_size value or the default.
func (c *ViewConfig) GetFinalPointSize() float64 {
	if c.FinalPointSize == nil {
		return 12
	}
	return *c.FinalPointSize
}

// GetAnimationFrameInterval parses and returns the frame interval.
func (c *ViewConfig) GetAnimationFrameInterval() time.Duration {
	if c.AnimationFrameInterval == nil || *c.AnimationFrameInterval == "" {
		return 40 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.AnimationFrameInterval)
	if err != nil {
		return 40 * time.Millisecond // default on parse error
	}
	return d
}

// GetAnimationMaxTime parses and returns the total animation budget.
func (c *ViewConfig) GetAnimationMaxTime() time.Duration {
	if c.AnimationMaxTime == nil || *c.AnimationMaxTime == "" {
		return 2 * time.Second // default
	}
	d, err := time.ParseDuration(*c.AnimationMaxTime)
	if err != nil {
		return 2 * time.Second // default on parse error
	}
	return d
}

// GetClusterCount returns the cluster_count value or the default.
func (c *ViewConfig) GetClusterCount() int {
	if c.ClusterCount == nil {
		return 3
	}
	return *c.ClusterCount
}

// GetPalette returns the palette value or the default.
func (c *ViewConfig) GetPalette() string {
	if c.Palette == nil || *c.Palette == "" {
		return "category10"
	}
	return *c.Palette
}

// GetListenAddr returns the listen_addr value or the default.
func (c *ViewConfig) GetListenAddr() string {
	if c.ListenAddr == nil || *c.ListenAddr == "" {
		return ":8080"
	}
	return *c.ListenAddr
}

// GetDataDir returns the data_dir value or the default.
func (c *ViewConfig) GetDataDir() string {
	if c.DataDir == nil || *c.DataDir == "" {
		return "data"
	}
	return *c.DataDir
}
