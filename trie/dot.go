// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import (
	"fmt"

	"github.com/emicklei/dot"
	"github.com/vechain/statecore/hashdb"
	"github.com/vechain/statecore/thor"
)

// Dot renders the nodes reachable from root as a directed graph.
// Stored nodes are labelled with their digest prefix, leaves share a rank.
func Dot(db hashdb.HashStore, root thor.Bytes32) (*dot.Graph, error) {
	g := dot.NewGraph(dot.Directed)
	if root == thor.EmptyRoot {
		g.Node("empty").Label("empty")
		return g, nil
	}
	d := &dotter{g: g, store: &hashedStore{db}}
	if _, err := d.draw(hashNode(root), nil); err != nil {
		return nil, err
	}
	return g, nil
}

type dotter struct {
	g     *dot.Graph
	store *hashedStore
	seq   int
}

func (d *dotter) newNode(label string) dot.Node {
	d.seq++
	return d.g.Node(fmt.Sprintf("n%d", d.seq)).Label(label)
}

func (d *dotter) draw(n node, path NibblePath) (dot.Node, error) {
	switch n := n.(type) {
	case hashNode:
		resolved, err := d.store.resolve(thor.Bytes32(n), path, nil, 0)
		if err != nil {
			return dot.Node{}, err
		}
		child, err := d.draw(resolved, path)
		if err != nil {
			return dot.Node{}, err
		}
		child.Label(fmt.Sprintf("%x\n%s", n[:4], child.Value("label")))
		return child, nil
	case *leafNode:
		dn := d.newNode(fmt.Sprintf("leaf %v", n.path))
		d.g.AddToSameRank("leaves", dn)
		return dn, nil
	case *extensionNode:
		dn := d.newNode(fmt.Sprintf("ext %v", n.path))
		child, err := d.draw(n.child, path.Concat(n.path))
		if err != nil {
			return dot.Node{}, err
		}
		d.g.Edge(dn, child)
		return dn, nil
	case *branchNode:
		label := "branch"
		if n.value != nil {
			label = "branch+value"
		}
		dn := d.newNode(label)
		for i, c := range n.children {
			if c == nil {
				continue
			}
			child, err := d.draw(c, path.Concat(NibblePath{byte(i)}))
			if err != nil {
				return dot.Node{}, err
			}
			d.g.Edge(dn, child).Label(fmt.Sprintf("%x", i))
		}
		return dn, nil
	}
	panic(fmt.Sprintf("%T: invalid node: %v", n, n))
}
