package config

import (
	"math"
	"strings"

	"github.com/teranos/clustergen/errors"
)

// Validate checks the record invariants: positive counts, ordered bounds,
// finite floats, non-negative spread and a file-safe name.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.NewConfigParseError("name cannot be empty")
	}
	if strings.ContainsAny(c.Name, `/\`) {
		return errors.NewConfigParseError("name %q must not contain path separators", c.Name)
	}

	if c.ClusterCount <= 0 {
		return errors.NewConfigParseError("cluster_count must be > 0, got %d", c.ClusterCount)
	}
	if c.DimCount <= 0 {
		return errors.NewConfigParseError("dim_count must be > 0, got %d", c.DimCount)
	}
	if c.MinClusterSize <= 0 {
		return errors.NewConfigParseError("min_cluster_size must be > 0, got %d", c.MinClusterSize)
	}
	if c.MinClusterSize > c.MaxClusterSize {
		return errors.NewConfigParseError("min_cluster_size (%d) must be <= max_cluster_size (%d)",
			c.MinClusterSize, c.MaxClusterSize)
	}
	if c.DimCount > MaxDimCount {
		return errors.NewConfigParseError("dim_count must be <= %d, got %d", MaxDimCount, c.DimCount)
	}
	if c.ClusterCount > MaxRows/c.MaxClusterSize {
		return errors.NewConfigParseError("cluster_count (%d) * max_cluster_size (%d) exceeds %d rows",
			c.ClusterCount, c.MaxClusterSize, MaxRows)
	}

	bounds := []struct {
		key   string
		value float64
	}{
		{KeyCenterMin, c.CenterMin},
		{KeyCenterMax, c.CenterMax},
		{KeyStdMin, c.StdMin},
		{KeyStdMax, c.StdMax},
	}
	for _, b := range bounds {
		if math.IsNaN(b.value) || math.IsInf(b.value, 0) {
			return errors.NewConfigParseError("%s must be finite, got %v", b.key, b.value)
		}
	}

	if c.CenterMin > c.CenterMax {
		return errors.NewConfigParseError("center_min (%g) must be <= center_max (%g)", c.CenterMin, c.CenterMax)
	}
	if c.StdMin < 0 {
		return errors.NewConfigParseError("std_min must be >= 0, got %g", c.StdMin)
	}
	if c.StdMin > c.StdMax {
		return errors.NewConfigParseError("std_min (%g) must be <= std_max (%g)", c.StdMin, c.StdMax)
	}

	return nil
}
