// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package trie

import "github.com/vechain/statecore/metrics"

var (
	metricNodeLookup = metrics.LazyLoadCounterVec("trie_node_lookup_count", []string{"event"})
	metricNodeSize   = metrics.LazyLoadHistogram("trie_stored_node_size_bytes", metrics.BucketSize)
	metricCommits    = metrics.LazyLoadCounter("trie_commit_count")
)
