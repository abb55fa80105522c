package config

import (
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/clustergen/errors"
)

// UnknownKeys returns keys present in the file that Config does not define,
// sorted. These are usually typos (cluster_cnt) that would otherwise surface
// as a confusing missing-key error.
func UnknownKeys(configPath string) ([]string, error) {
	keys, err := topLevelKeys(configPath)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, key := range keys {
		if !slices.Contains(RequiredKeys, key) {
			unknown = append(unknown, key)
		}
	}
	return unknown, nil
}

// checkKeyCase rejects required keys written in another case (NAME, Dim_Count).
// Keys are case-sensitive, but viper folds them and would accept these.
func checkKeyCase(configPath string) error {
	keys, err := topLevelKeys(configPath)
	if err != nil {
		return err
	}

	for _, key := range keys {
		lower := strings.ToLower(key)
		if key != lower && slices.Contains(RequiredKeys, lower) {
			err := errors.NewConfigParseError("config key %q must be written %q", key, lower)
			return errors.WithHint(err, "config keys are case-sensitive and lowercase")
		}
	}
	return nil
}

func topLevelKeys(configPath string) ([]string, error) {
	var doc map[string]interface{}
	if _, err := toml.DecodeFile(configPath, &doc); err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrConfigParse), "failed to decode %s", configPath)
	}

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
