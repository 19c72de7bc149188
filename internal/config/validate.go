package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Batch.validate(); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	return nil
}

func (b *BatchConfig) validate() error {
	if b.BaseDir == "" || !filepath.IsAbs(b.BaseDir) {
		return fmt.Errorf("base_dir must be an absolute path (got %q)", b.BaseDir)
	}
	if b.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0 (got %d)", b.ChunkSize)
	}
	if b.CountrySkipLimit < 0 {
		return fmt.Errorf("country_skip_limit must be >= 0 (got %d)", b.CountrySkipLimit)
	}
	if b.TeamSkipLimit < 0 {
		return fmt.Errorf("team_skip_limit must be >= 0 (got %d)", b.TeamSkipLimit)
	}
	return nil
}

func (s *SchedulerConfig) validate() error {
	if !s.Enabled {
		return nil
	}
	if s.Interval < time.Second {
		return fmt.Errorf("interval must be at least 1s (got %v)", s.Interval)
	}
	if s.DataVersion == "" {
		return fmt.Errorf("data_version is required when the scheduler is enabled")
	}
	if s.FileName == "" {
		return fmt.Errorf("file_name is required when the scheduler is enabled")
	}
	return nil
}
