// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/statecore/metrics"

var (
	metricStorageCache  = metrics.LazyLoadCounterVec("account_storage_cache_count", []string{"type", "event"})
	metricAccountCommit = metrics.LazyLoadCounterVec("account_commit_count", []string{"target"})
)
