package program

import (
	"encoding/binary"

	"fixedswap/pkg/host"
	"fixedswap/pkg/token"
)

// Swap processor account order.
const (
	swapPayerIndex = iota
	swapPoolIndex
	swapUserOutIndex
	swapVaultAIndex
	swapVaultBIndex
	swapSysvarIndex
	swapTokenIndex
	swapAccountCount
)

// processSwap services a swap: the deposit happened in the immediately
// preceding instruction of the same transaction, so all that is left is to
// authenticate it, convert the amount, and pay out of the quote vault under
// the pool's re-derived authority.
func processSwap(ctx host.ExecutionContext) error {
	if ctx.NumAccounts() != swapAccountCount {
		return ErrAccountCount
	}

	pool, _ := ctx.Account(swapPoolIndex)
	userOut, _ := ctx.Account(swapUserOutIndex)
	vaultA, _ := ctx.Account(swapVaultAIndex)
	vaultB, _ := ctx.Account(swapVaultBIndex)
	sysvar, _ := ctx.Account(swapSysvarIndex)

	if !sysvar.Key().Equals(SysvarInstructionsID) {
		return ErrSeedMismatch
	}

	// Borrow is released inside ReadPool, before any service call below.
	record, err := ReadPool(pool)
	if err != nil {
		return err
	}

	// Vault substitution guard: supplied vaults must be the stored ones,
	// independent of the derivation check done at init time.
	if !vaultA.Key().Equals(record.VaultA) {
		return ErrSeedMismatch
	}
	if !vaultB.Key().Equals(record.VaultB) {
		return ErrSeedMismatch
	}

	amountIn, err := ValidateDeposit(ctx.Introspection(), record.VaultA)
	if err != nil {
		return err
	}

	amountOut, err := ConvertOut(amountIn, record.Rate)
	if err != nil {
		return err
	}

	data := make([]byte, 1+8)
	data[0] = token.InstructionTransfer
	binary.LittleEndian.PutUint64(data[1:9], amountOut)

	err = ctx.Invoke(host.Instruction{
		ProgramID: TokenProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(vaultB.Key(), false, true),
			host.Meta(userOut.Key(), false, true),
			host.Meta(pool.Key(), true, false),
		},
		Data: data,
	}, record.SignerSeeds())
	if err != nil {
		return err
	}

	ctx.Log("swapped %d base atoms for %d quote atoms", amountIn, amountOut)
	return nil
}
