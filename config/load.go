package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/clustergen/errors"
)

// valueKind is the TOML value type a key must carry
type valueKind int

const (
	kindString valueKind = iota
	kindInteger
	kindNumber // integer or float
)

var keyKinds = map[string]valueKind{
	KeyName:           kindString,
	KeyClusterCount:   kindInteger,
	KeyDimCount:       kindInteger,
	KeyMinClusterSize: kindInteger,
	KeyMaxClusterSize: kindInteger,
	KeyCenterMin:      kindNumber,
	KeyCenterMax:      kindNumber,
	KeyStdMin:         kindNumber,
	KeyStdMax:         kindNumber,
}

// LoadFromFile reads and validates the configuration at configPath.
//
// Errors are marked with errors.ErrConfigNotFound when the path cannot be
// read and errors.ErrConfigParse when the document is malformed, misses a
// required key, carries a value of the wrong type or violates an invariant.
func LoadFromFile(configPath string) (*Config, error) {
	if err := checkReadable(configPath); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrConfigParse),
			"failed to parse config file %s", configPath)
	}
	if err := checkKeyCase(configPath); err != nil {
		return nil, err
	}

	return LoadWithViper(v)
}

// LoadWithViper builds a Config from an already populated Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	if missing := MissingKeys(v); len(missing) > 0 {
		err := errors.NewConfigParseError("missing required config keys: %s", strings.Join(missing, ", "))
		return nil, errors.WithHintf(err, "all of %s must be set; there are no defaults", strings.Join(RequiredKeys, ", "))
	}

	if err := checkKinds(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.Mark(err, errors.ErrConfigParse), "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MissingKeys returns the required keys that v does not set, in document order
func MissingKeys(v *viper.Viper) []string {
	var missing []string
	for _, key := range RequiredKeys {
		if !v.IsSet(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

func checkReadable(configPath string) error {
	info, err := os.Stat(configPath)
	if err != nil {
		return errors.WithHint(
			errors.Wrapf(errors.Mark(err, errors.ErrConfigNotFound), "failed to read config file %s", configPath),
			"pass the path of an existing TOML file as the first argument")
	}
	if info.IsDir() {
		return errors.Mark(errors.Newf("config path %s is a directory", configPath), errors.ErrConfigNotFound)
	}

	f, err := os.Open(configPath)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrConfigNotFound), "failed to open config file %s", configPath)
	}
	return f.Close()
}

// checkKinds rejects values the TOML decoder accepted but the record cannot
// hold without silent coercion (e.g. cluster_count = 2.5 or "10").
func checkKinds(v *viper.Viper) error {
	for _, key := range RequiredKeys {
		value := v.Get(key)
		ok := false
		switch keyKinds[key] {
		case kindString:
			_, ok = value.(string)
		case kindInteger:
			ok = isInteger(value)
		case kindNumber:
			ok = isInteger(value) || isFloat(value)
		}
		if !ok {
			return errors.NewConfigParseError("config key %s has unexpected value %v (%T)", key, value, value)
		}
	}
	return nil
}

func isInteger(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isFloat(value interface{}) bool {
	switch value.(type) {
	case float32, float64:
		return true
	}
	return false
}
