// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package hashdb

import "github.com/vechain/statecore/metrics"

var (
	metricCacheHitMiss  = metrics.LazyLoadCounterVec("hashdb_cache_hit_miss_count", []string{"event"})
	metricCommitEntries = metrics.LazyLoadCounter("hashdb_committed_entry_count")
)
