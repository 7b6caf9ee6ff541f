// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/statecore/metrics"
	"github.com/vechain/statecore/thor"
	"github.com/vechain/statecore/trie"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "statetool"
	app.Usage = "Inspect and edit a persistent Merkle Patricia Trie"
	app.Copyright = "2018 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		trieSpecFlag,
		cacheFlag,
		verbosityFlag,
		levelDBCacheFlag,
		levelDBOpenFilesFlag,
		metricsFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:      "put",
			Usage:     "insert a key-value pair and commit",
			ArgsUsage: "<key> <value>",
			Action:    withDatabase(putAction),
		},
		{
			Name:      "get",
			Usage:     "print the value of a key",
			ArgsUsage: "<key>",
			Flags:     []cli.Flag{rootFlag},
			Action:    withDatabase(getAction),
		},
		{
			Name:      "del",
			Usage:     "remove a key and commit",
			ArgsUsage: "<key>",
			Action:    withDatabase(delAction),
		},
		{
			Name:   "dump",
			Usage:  "print all key-value pairs in key order",
			Flags:  []cli.Flag{rootFlag},
			Action: withDatabase(dumpAction),
		},
		{
			Name:   "root",
			Usage:  "print the committed root",
			Action: withDatabase(rootAction),
		},
		{
			Name:   "dot",
			Usage:  "render the trie structure in graphviz dot format",
			Flags:  []cli.Flag{rootFlag, outFlag},
			Action: withDatabase(dotAction),
		},
		{
			Name:      "proof",
			Usage:     "print and verify the merkle proof of a key",
			ArgsUsage: "<key>",
			Flags:     []cli.Flag{rootFlag},
			Action:    withDatabase(proofAction),
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDatabase resolves config, sets up logging and metrics, and opens the database for action.
func withDatabase(action func(ctx *cli.Context, db *database) error) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := resolveConfig(ctx)
		if err != nil {
			return err
		}
		initLogger(cfg.Verbosity)
		if cfg.Metrics {
			metrics.InitializePrometheusMetrics()
			defer func() {
				if err := metrics.WriteText(os.Stderr); err != nil {
					log.Warn("failed to write metrics", "err", err)
				}
			}()
		}

		db, err := openDatabase(&cfg)
		if err != nil {
			return err
		}
		defer func() {
			log.Debug("closing database...")
			if err := db.Close(); err != nil {
				log.Warn("failed to close database", "err", err)
			}
		}()
		return action(ctx, db)
	}
}

func argBytes(ctx *cli.Context, n int) ([][]byte, error) {
	if ctx.NArg() != n {
		return nil, errors.Errorf("expected %d arguments, got %d", n, ctx.NArg())
	}
	out := make([][]byte, n)
	for i := range out {
		b, err := parseBytes(ctx.Args().Get(i))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func putAction(ctx *cli.Context, db *database) error {
	args, err := argBytes(ctx, 2)
	if err != nil {
		return err
	}
	root, err := db.update(func(t trie.TrieMut) error {
		_, err := t.Insert(args[0], args[1])
		return err
	})
	if err != nil {
		return err
	}
	fmt.Println(root)
	return nil
}

func getAction(ctx *cli.Context, db *database) error {
	args, err := argBytes(ctx, 1)
	if err != nil {
		return err
	}
	t, err := db.readonly(ctx.String(rootFlag.Name))
	if err != nil {
		return err
	}
	val, err := t.Get(args[0])
	if err != nil {
		return err
	}
	if val == nil {
		return errors.Errorf("key not found: 0x%x", args[0])
	}
	fmt.Printf("0x%x\n", val)
	return nil
}

func delAction(ctx *cli.Context, db *database) error {
	args, err := argBytes(ctx, 1)
	if err != nil {
		return err
	}
	root, err := db.update(func(t trie.TrieMut) error {
		old, err := t.Remove(args[0])
		if err != nil {
			return err
		}
		if old == nil {
			log.Info("key not present", "key", hex.EncodeToString(args[0]))
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Println(root)
	return nil
}

func dumpAction(ctx *cli.Context, db *database) error {
	t, err := db.readonly(ctx.String(rootFlag.Name))
	if err != nil {
		return err
	}
	return dump(t, os.Stdout)
}

func dump(t trie.Trie, w io.Writer) error {
	it, err := t.Iterator()
	if err != nil {
		return err
	}
	for it.Next() {
		if _, err := fmt.Fprintf(w, "0x%x: 0x%x\n", it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return it.Error()
}

func rootAction(_ *cli.Context, db *database) error {
	root, err := db.head()
	if err != nil {
		return err
	}
	fmt.Println(root)
	return nil
}

func dotAction(ctx *cli.Context, db *database) error {
	root, err := db.root(ctx.String(rootFlag.Name))
	if err != nil {
		return err
	}
	g, err := trie.Dot(db.nodes, root)
	if err != nil {
		return err
	}
	if out := ctx.String(outFlag.Name); out != "" {
		return errors.Wrap(os.WriteFile(out, []byte(g.String()), 0644), "write dot file")
	}
	fmt.Println(g.String())
	return nil
}

func proofAction(ctx *cli.Context, db *database) error {
	args, err := argBytes(ctx, 1)
	if err != nil {
		return err
	}
	root, err := db.root(ctx.String(rootFlag.Name))
	if err != nil {
		return err
	}
	t, err := db.factory.Readonly(db.nodes, root)
	if err != nil {
		return err
	}
	proof, err := trie.Proof(t, args[0])
	if err != nil {
		return err
	}
	for _, n := range proof {
		fmt.Printf("0x%x\n", n)
	}

	// proofs are verified against the raw trie, where secure keys are stored hashed
	key := args[0]
	if db.factory.Spec() != trie.Generic {
		key = thor.Blake2b(key).Bytes()
	}
	val, err := trie.VerifyProof(root, key, proof)
	if err != nil {
		return errors.Wrap(err, "verify proof")
	}
	log.Info("proof verified", "nodes", len(proof), "present", val != nil)
	return nil
}
