package client

import (
	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/program"
)

// PoolAddresses is the full derived identity set for one mint pair.
type PoolAddresses struct {
	Pool       solana.PublicKey
	PoolBump   uint8
	VaultA     solana.PublicKey
	VaultABump uint8
	VaultB     solana.PublicKey
	VaultBBump uint8
}

// DeriveAddresses recomputes the pool and vault identities for a mint pair,
// exactly as the program will on-chain.
func DeriveAddresses(baseMint, quoteMint solana.PublicKey) (*PoolAddresses, error) {
	pool, poolBump, err := program.DerivePoolAddress(baseMint, quoteMint)
	if err != nil {
		return nil, err
	}
	vaultA, bumpA, err := program.DeriveVaultAddress(pool, baseMint)
	if err != nil {
		return nil, err
	}
	vaultB, bumpB, err := program.DeriveVaultAddress(pool, quoteMint)
	if err != nil {
		return nil, err
	}
	return &PoolAddresses{
		Pool:       pool,
		PoolBump:   poolBump,
		VaultA:     vaultA,
		VaultABump: bumpA,
		VaultB:     vaultB,
		VaultBBump: bumpB,
	}, nil
}
