// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state implements accounts on top of the world state trie.
// It follows the flow as bellow:
//
//	[ FVMAccount / AVMAccount ]
//	          |
//	[ storage changes ] -> CommitStorage -> [ storage trie ] -> storage root
//	          |                                                     |
//	[ storage read cache ]                                        RLP -> [ world trie ]
//	          |
//	[ storage trie reader ]
//
// An account only writes to the store in CommitStorage and CommitCode, which
// must run, in that order, before its record is serialized. SaveAccount does all three.
package state
