package program

import (
	"github.com/gagliardetto/solana-go"
)

// FindProgramAddress searches bump values from 255 downward for the first
// seed combination that hashes to an off-curve address, so the result can
// never be controlled by an externally held private key. Pure and
// deterministic for fixed inputs.
func FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	trial := make([][]byte, len(seeds)+1)
	copy(trial, seeds)
	for bump := 255; bump >= 0; bump-- {
		trial[len(seeds)] = []byte{uint8(bump)}
		addr, err := solana.CreateProgramAddress(trial, programID)
		if err == nil {
			return addr, uint8(bump), nil
		}
	}
	return solana.PublicKey{}, 0, ErrSeedMismatch.withCause(errViableBump)
}

var errViableBump = errBump{}

type errBump struct{}

func (errBump) Error() string { return "no viable bump found" }

// DerivePoolAddress computes the pool identity for a mint pair. Two
// initializations with the same pair collide here by construction.
func DerivePoolAddress(baseMint, quoteMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{baseMint.Bytes(), quoteMint.Bytes()}, ProgramID)
}

// DeriveVaultAddress computes a custody vault identity from its pool and
// mint.
func DeriveVaultAddress(pool, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress([][]byte{pool.Bytes(), mint.Bytes()}, ProgramID)
}
