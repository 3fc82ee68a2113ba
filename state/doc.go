// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the pool's revertable key/value storage.
// It follows the flow as bellow:
//
//	   [ revertable state ]
//	            |
//	     [ stacked map ] -> [ journal ] -> [ stage ] -> [ kv bulk ]
//	            |
//	     [ committed lru ]
//	            |
//	       [ kv store ]
//
// Every slot is addressed by a service address and a 32 byte key, and holds
// an rlp encoded value. Writing an empty value deletes the slot.
package state
