// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/statecore/lvldb"
	"github.com/vechain/statecore/trie"
)

// config is the resolved tool configuration.
type config struct {
	DataDir   string        `yaml:"data-dir"`
	TrieSpec  string        `yaml:"trie-spec"`
	CacheMB   int           `yaml:"cache-mb"`
	Verbosity int           `yaml:"verbosity"`
	Metrics   bool          `yaml:"metrics"`
	LevelDB   lvldb.Options `yaml:"leveldb"`
}

func defaultConfig() config {
	return config{
		DataDir:   dataDirFlag.Value,
		TrieSpec:  trieSpecFlag.Value,
		CacheMB:   cacheFlag.Value,
		Verbosity: verbosityFlag.Value,
		LevelDB: lvldb.Options{
			CacheSize:              levelDBCacheFlag.Value,
			OpenFilesCacheCapacity: levelDBOpenFilesFlag.Value,
		},
	}
}

// loadConfigFile decodes path over the defaults.
func loadConfigFile(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// resolveConfig loads the config file, if any, and applies flags that were set explicitly.
func resolveConfig(ctx *cli.Context) (config, error) {
	cfg := defaultConfig()
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		var err error
		if cfg, err = loadConfigFile(path); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.GlobalString(dataDirFlag.Name)
	}
	if ctx.GlobalIsSet(trieSpecFlag.Name) {
		cfg.TrieSpec = ctx.GlobalString(trieSpecFlag.Name)
	}
	if ctx.GlobalIsSet(cacheFlag.Name) {
		cfg.CacheMB = ctx.GlobalInt(cacheFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(metricsFlag.Name) {
		cfg.Metrics = ctx.GlobalBool(metricsFlag.Name)
	}
	if ctx.GlobalIsSet(levelDBCacheFlag.Name) {
		cfg.LevelDB.CacheSize = ctx.GlobalInt(levelDBCacheFlag.Name)
	}
	if ctx.GlobalIsSet(levelDBOpenFilesFlag.Name) {
		cfg.LevelDB.OpenFilesCacheCapacity = ctx.GlobalInt(levelDBOpenFilesFlag.Name)
	}
	return cfg, cfg.validate()
}

func (c *config) validate() error {
	if c.DataDir == "" {
		return errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if _, err := trie.ParseTrieSpec(c.TrieSpec); err != nil {
		return errors.Wrap(err, "parse trie-spec")
	}
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return errors.Errorf("verbosity out of range: %d", c.Verbosity)
	}
	if c.CacheMB < 0 {
		return errors.Errorf("negative cache-mb: %d", c.CacheMB)
	}
	return nil
}
