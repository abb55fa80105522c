// Package config loads the clustergen dataset configuration.
//
// A configuration is a flat TOML document with nine mandatory keys:
//
//	name             = "clusters_100_5"
//	cluster_count    = 100
//	dim_count        = 5
//	min_cluster_size = 50
//	max_cluster_size = 500
//	center_min       = -100.0
//	center_max       = 100.0
//	std_min          = 0.5
//	std_max          = 5.0
//
// There is no defaulting. The record is read once and never mutated.
package config

import (
	"math"
	"path/filepath"
)

// Config describes one synthetic clustering dataset
type Config struct {
	Name           string  `mapstructure:"name" toml:"name" json:"name" yaml:"name"`
	ClusterCount   int     `mapstructure:"cluster_count" toml:"cluster_count" json:"cluster_count" yaml:"cluster_count"`
	DimCount       int     `mapstructure:"dim_count" toml:"dim_count" json:"dim_count" yaml:"dim_count"`
	MinClusterSize int     `mapstructure:"min_cluster_size" toml:"min_cluster_size" json:"min_cluster_size" yaml:"min_cluster_size"`
	MaxClusterSize int     `mapstructure:"max_cluster_size" toml:"max_cluster_size" json:"max_cluster_size" yaml:"max_cluster_size"`
	CenterMin      float64 `mapstructure:"center_min" toml:"center_min" json:"center_min" yaml:"center_min"`
	CenterMax      float64 `mapstructure:"center_max" toml:"center_max" json:"center_max" yaml:"center_max"`
	StdMin         float64 `mapstructure:"std_min" toml:"std_min" json:"std_min" yaml:"std_min"`
	StdMax         float64 `mapstructure:"std_max" toml:"std_max" json:"std_max" yaml:"std_max"`
}

// Config keys
const (
	KeyName           = "name"
	KeyClusterCount   = "cluster_count"
	KeyDimCount       = "dim_count"
	KeyMinClusterSize = "min_cluster_size"
	KeyMaxClusterSize = "max_cluster_size"
	KeyCenterMin      = "center_min"
	KeyCenterMax      = "center_max"
	KeyStdMin         = "std_min"
	KeyStdMax         = "std_max"
)

// RequiredKeys lists every mandatory key in document order
var RequiredKeys = []string{
	KeyName,
	KeyClusterCount,
	KeyDimCount,
	KeyMinClusterSize,
	KeyMaxClusterSize,
	KeyCenterMin,
	KeyCenterMax,
	KeyStdMin,
	KeyStdMax,
}

// Size limits. A dataset is held in memory and written as one Parquet file,
// so row and axis counts must fit in int32.
const (
	MaxRows     = math.MaxInt32
	MaxDimCount = 1 << 16
)

// OutputExtension is appended to Name to form the dataset file name
const OutputExtension = ".parquet"

// OutputPath returns <dir>/<name>.parquet
func (c *Config) OutputPath(dir string) string {
	return filepath.Join(dir, c.Name+OutputExtension)
}
