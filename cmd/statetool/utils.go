// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/kv"
	"github.com/vechain/statecore/lvldb"
	"github.com/vechain/statecore/thor"
	"github.com/vechain/statecore/trie"
)

const (
	nodeSpace = kv.Bucket("n")
	metaSpace = kv.Bucket("m")
)

var headKey = []byte("head")

func initLogger(verbosity int) {
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(verbosity), useColor)
	log.SetDefault(log.NewLogger(handler))
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.statetool")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.statetool")
		default:
			return filepath.Join(home, ".org.vechain.statetool")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// parseBytes decodes 0x-prefixed hex, anything else is taken literally.
func parseBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, errors.Wrapf(err, "decode hex %q", s)
		}
		return b, nil
	}
	return []byte(s), nil
}

// database is a trie node store plus the head root, persisted in one leveldb.
type database struct {
	ldb     *lvldb.LevelDB
	nodes   *hashdb.KVStore
	meta    kv.Store
	factory *trie.Factory
}

func openDatabase(cfg *config) (*database, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", cfg.DataDir)
	}
	ldb, err := lvldb.New(filepath.Join(cfg.DataDir, "trie.db"), cfg.LevelDB)
	if err != nil {
		return nil, err
	}
	return newDatabase(ldb, cfg)
}

func newDatabase(ldb *lvldb.LevelDB, cfg *config) (*database, error) {
	spec, err := trie.ParseTrieSpec(cfg.TrieSpec)
	if err != nil {
		return nil, err
	}
	return &database{
		ldb:     ldb,
		nodes:   hashdb.NewKVStore(nodeSpace.NewStore(ldb), hashdb.KVStoreOptions{CacheSizeMB: cfg.CacheMB}),
		meta:    metaSpace.NewStore(ldb),
		factory: trie.NewFactory(spec),
	}, nil
}

func (db *database) Close() error {
	return db.ldb.Close()
}

// head returns the last committed root, the empty root for a fresh database.
func (db *database) head() (thor.Bytes32, error) {
	val, err := db.meta.Get(headKey)
	if err != nil {
		if db.meta.IsNotFound(err) {
			return thor.EmptyRoot, nil
		}
		return thor.Bytes32{}, errors.Wrap(err, "read head")
	}
	return thor.BytesToBytes32(val), nil
}

// root resolves the root to read from, override wins when non-empty.
func (db *database) root(override string) (thor.Bytes32, error) {
	if override != "" {
		return thor.ParseBytes32(override)
	}
	return db.head()
}

// update applies fn to the trie at head, then flushes nodes and moves head.
func (db *database) update(fn func(t trie.TrieMut) error) (thor.Bytes32, error) {
	head, err := db.head()
	if err != nil {
		return thor.Bytes32{}, err
	}
	t, err := db.factory.FromExisting(db.nodes, head)
	if err != nil {
		return thor.Bytes32{}, err
	}
	if err := fn(t); err != nil {
		return thor.Bytes32{}, err
	}
	root := t.Root()
	if err := db.nodes.Commit(); err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "commit nodes")
	}
	if err := db.meta.Put(headKey, root.Bytes()); err != nil {
		return thor.Bytes32{}, errors.Wrap(err, "write head")
	}
	log.Debug("head updated", "from", head, "to", root)
	return root, nil
}

func (db *database) readonly(override string) (trie.Trie, error) {
	root, err := db.root(override)
	if err != nil {
		return nil, err
	}
	return db.factory.Readonly(db.nodes, root)
}
