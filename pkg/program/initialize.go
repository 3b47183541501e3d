package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"fixedswap/pkg/host"
	"fixedswap/pkg/token"
)

// Initializer account order.
const (
	initPayerIndex = iota
	initPoolIndex
	initVaultAIndex
	initVaultBIndex
	initBaseMintIndex
	initQuoteMintIndex
	initSystemIndex
	initTokenIndex
	initAccountCount
)

// processInitialize creates the pool and its two custody vaults. Every
// account identity is re-derived and checked before anything is created;
// a collision on an existing pool fails inside account creation with no
// state retained.
func processInitialize(ctx host.ExecutionContext, data []byte) error {
	if ctx.NumAccounts() != initAccountCount {
		return ErrAccountCount
	}
	if len(data) < 8 {
		return ErrMalformedInstruction
	}
	rate := binary.LittleEndian.Uint64(data[:8])

	payer, _ := ctx.Account(initPayerIndex)
	pool, _ := ctx.Account(initPoolIndex)
	vaultA, _ := ctx.Account(initVaultAIndex)
	vaultB, _ := ctx.Account(initVaultBIndex)
	baseMint, _ := ctx.Account(initBaseMintIndex)
	quoteMint, _ := ctx.Account(initQuoteMintIndex)

	expectedPool, poolBump, err := DerivePoolAddress(baseMint.Key(), quoteMint.Key())
	if err != nil {
		return err
	}
	if !pool.Key().Equals(expectedPool) {
		return ErrSeedMismatch
	}

	expectedVaultA, bumpA, err := DeriveVaultAddress(pool.Key(), baseMint.Key())
	if err != nil {
		return err
	}
	expectedVaultB, bumpB, err := DeriveVaultAddress(pool.Key(), quoteMint.Key())
	if err != nil {
		return err
	}
	if !vaultA.Key().Equals(expectedVaultA) {
		return ErrSeedMismatch
	}
	if !vaultB.Key().Equals(expectedVaultB) {
		return ErrSeedMismatch
	}

	poolSeeds := host.SignerSeeds{baseMint.Key().Bytes(), quoteMint.Key().Bytes(), []byte{poolBump}}
	if err := createAccount(ctx, payer, pool, PoolLen, ProgramID, poolSeeds); err != nil {
		return err
	}

	record := &Pool{
		Rate:      uint128.From64(rate),
		VaultA:    vaultA.Key(),
		VaultB:    vaultB.Key(),
		BaseMint:  baseMint.Key(),
		QuoteMint: quoteMint.Key(),
		Bump:      poolBump,
	}
	if err := WritePool(pool, record); err != nil {
		return err
	}

	seedsA := host.SignerSeeds{pool.Key().Bytes(), baseMint.Key().Bytes(), []byte{bumpA}}
	if err := createAccount(ctx, payer, vaultA, token.AccountLen, TokenProgramID, seedsA); err != nil {
		return err
	}
	if err := initializeVault(ctx, vaultA, baseMint, pool.Key()); err != nil {
		return err
	}

	seedsB := host.SignerSeeds{pool.Key().Bytes(), quoteMint.Key().Bytes(), []byte{bumpB}}
	if err := createAccount(ctx, payer, vaultB, token.AccountLen, TokenProgramID, seedsB); err != nil {
		return err
	}
	if err := initializeVault(ctx, vaultB, quoteMint, pool.Key()); err != nil {
		return err
	}

	ctx.Log("initialized pool %s rate=%d", pool.Key(), rate)
	return nil
}

// createAccount asks the account-creation service for a rent-exempt account
// funded by payer, signed by the new account's own derived authority.
func createAccount(ctx host.ExecutionContext, payer, newAccount *host.Account, space int, owner solana.PublicKey, seeds host.SignerSeeds) error {
	lamports := ctx.MinimumBalance(space)

	data := make([]byte, 4+8+8+32)
	binary.LittleEndian.PutUint32(data[0:4], 0) // CreateAccount
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	binary.LittleEndian.PutUint64(data[12:20], uint64(space))
	copy(data[20:52], owner[:])

	return ctx.Invoke(host.Instruction{
		ProgramID: SystemProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(payer.Key(), true, true),
			host.Meta(newAccount.Key(), true, true),
		},
		Data: data,
	}, seeds)
}

// initializeVault names the pool as the vault's custody owner, so only this
// program, by re-deriving its authority, can move funds out later.
func initializeVault(ctx host.ExecutionContext, vault, mint *host.Account, owner solana.PublicKey) error {
	data := make([]byte, 1+32)
	data[0] = token.InstructionInitializeAccount3
	copy(data[1:33], owner[:])

	return ctx.Invoke(host.Instruction{
		ProgramID: TokenProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(vault.Key(), false, true),
			host.Meta(mint.Key(), false, false),
		},
		Data: data,
	})
}
