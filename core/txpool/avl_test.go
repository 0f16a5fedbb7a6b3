// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const (
	avlOpAdd = iota
	avlOpRemove
	avlOpSearch
)

// TestTree is a randomized property test against a reference map,
// grounded on ethereum-go-ethereum/core/txpool/legacypool/avl_test.go's
// TestTree: it asserts both point lookups and prefix-sum queries agree with
// a brute-force reference over many random add/remove/search sequences.
func TestTree(t *testing.T) {
	const maxKey = 40
	const nops = 5000

	for seed := 0; seed < 20; seed++ {
		rng := rand.New(rand.NewSource(int64(seed)))
		tree := &AVLTree{}
		reference := make(map[byte]uint64)

		for i := 0; i < nops; i++ {
			op := rng.Intn(3)
			k := byte(rng.Intn(maxKey))
			key := addr(k)

			switch op {
			case avlOpAdd:
				v := uint64(rng.Intn(1000) + 1)
				tree.Add(key, uint256.NewInt(v), &TxEntry{})
				reference[k] = v
			case avlOpRemove:
				tree.Remove(key)
				delete(reference, k)
			case avlOpSearch:
				node, sum := tree.Search(key)
				var gotVal uint64
				if node != nil {
					gotVal = node.weight.Uint64()
				}
				require.Equal(t, reference[k], gotVal, "key %d", k)

				var wantSum uint64
				for rk, rv := range reference {
					if rk <= k {
						wantSum += rv
					}
				}
				require.Equal(t, wantSum, sum.Uint64(), "prefix sum at key %d", k)
			}
		}

		nodes := tree.Flatten()
		var keys []byte
		for k := range reference {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		require.Len(t, nodes, len(keys))
		for i, k := range keys {
			require.Equal(t, addr(k), nodes[i].key)
		}
	}
}

func TestTreePick(t *testing.T) {
	tree := &AVLTree{}
	tree.Add(addr(1), uint256.NewInt(10), &TxEntry{})
	tree.Add(addr(2), uint256.NewInt(20), &TxEntry{})
	tree.Add(addr(3), uint256.NewInt(30), &TxEntry{})

	require.Equal(t, addr(1), tree.Pick(uint256.NewInt(0)).key)
	require.Equal(t, addr(1), tree.Pick(uint256.NewInt(9)).key)
	require.Equal(t, addr(2), tree.Pick(uint256.NewInt(10)).key)
	require.Equal(t, addr(2), tree.Pick(uint256.NewInt(29)).key)
	require.Equal(t, addr(3), tree.Pick(uint256.NewInt(30)).key)
	require.Equal(t, addr(3), tree.Pick(uint256.NewInt(59)).key)
}

func TestTreeTotalAndLen(t *testing.T) {
	tree := &AVLTree{}
	require.True(t, tree.Total().IsZero())
	require.Equal(t, 0, tree.Len())

	tree.Add(addr(1), uint256.NewInt(10), &TxEntry{})
	tree.Add(addr(2), uint256.NewInt(5), &TxEntry{})
	require.Equal(t, uint64(15), tree.Total().Uint64())
	require.Equal(t, 2, tree.Len())

	tree.Remove(addr(1))
	require.Equal(t, uint64(5), tree.Total().Uint64())
	require.Equal(t, 1, tree.Len())
}
