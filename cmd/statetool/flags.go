// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the trie database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml config file, flags take precedence",
	}
	trieSpecFlag = cli.StringFlag{
		Name:  "trie-spec",
		Value: "secure",
		Usage: "trie variant: secure, generic or fat",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache-mb",
		Value: 64,
		Usage: "size of the trie node cache in MiB",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	levelDBCacheFlag = cli.IntFlag{
		Name:  "leveldb.cache-size",
		Value: 128,
		Usage: "leveldb block cache and write buffer budget in MiB",
	}
	levelDBOpenFilesFlag = cli.IntFlag{
		Name:  "leveldb.open-files",
		Value: 64,
		Usage: "leveldb open files cache capacity",
	}
	metricsFlag = cli.BoolFlag{
		Name:  "metrics",
		Usage: "collect metrics and print them to stderr on exit",
	}
	rootFlag = cli.StringFlag{
		Name:  "root",
		Usage: "read from this root instead of the stored head",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write output to file instead of stdout",
	}
)
