// Package client builds the instructions a caller submits against the swap
// facility and mirrors its conversion math for previews.
package client

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
	"fixedswap/pkg/program"
	"fixedswap/pkg/token"
)

// InitializeInstructionAccounts names the 8 accounts of the initializer, in
// order.
type InitializeInstructionAccounts struct {
	Payer     solana.PublicKey
	Pool      solana.PublicKey
	VaultA    solana.PublicKey
	VaultB    solana.PublicKey
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey
}

// NewInitializeInstruction builds opcode 0 with the little-endian rate.
func NewInitializeInstruction(accounts *InitializeInstructionAccounts, rate uint64) host.Instruction {
	data := make([]byte, 1+8)
	data[0] = program.OpInitialize
	binary.LittleEndian.PutUint64(data[1:9], rate)

	return host.Instruction{
		ProgramID: program.ProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(accounts.Payer, true, true),
			host.Meta(accounts.Pool, false, true),
			host.Meta(accounts.VaultA, false, true),
			host.Meta(accounts.VaultB, false, true),
			host.Meta(accounts.BaseMint, false, false),
			host.Meta(accounts.QuoteMint, false, false),
			host.Meta(program.SystemProgramID, false, false),
			host.Meta(program.TokenProgramID, false, false),
		},
		Data: data,
	}
}

// SwapInstructionAccounts names the 7 accounts of the swap processor, in
// order.
type SwapInstructionAccounts struct {
	Payer   solana.PublicKey
	Pool    solana.PublicKey
	UserOut solana.PublicKey
	VaultA  solana.PublicKey
	VaultB  solana.PublicKey
}

// NewSwapInstruction builds opcode 1; the swap carries no payload beyond
// the opcode.
func NewSwapInstruction(accounts *SwapInstructionAccounts) host.Instruction {
	return host.Instruction{
		ProgramID: program.ProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(accounts.Payer, true, true),
			host.Meta(accounts.Pool, false, false),
			host.Meta(accounts.UserOut, false, true),
			host.Meta(accounts.VaultA, false, true),
			host.Meta(accounts.VaultB, false, true),
			host.Meta(program.SysvarInstructionsID, false, false),
			host.Meta(program.TokenProgramID, false, false),
		},
		Data: []byte{program.OpSwap},
	}
}

// NewDepositInstruction builds the token transfer that must immediately
// precede a swap: source token account into the pool's base vault.
func NewDepositInstruction(source, vaultA, owner solana.PublicKey, amount uint64) host.Instruction {
	data := make([]byte, 1+8)
	data[0] = token.InstructionTransfer
	binary.LittleEndian.PutUint64(data[1:9], amount)

	return host.Instruction{
		ProgramID: program.TokenProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(source, false, true),
			host.Meta(vaultA, false, true),
			host.Meta(owner, true, false),
		},
		Data: data,
	}
}

// BuildSwapInstructions composes the atomic deposit + swap pair. The two
// must land adjacent in one transaction; the swap authenticates the deposit
// by position.
func BuildSwapInstructions(user, userSource, userOut solana.PublicKey, addrs *PoolAddresses, amountIn uint64) []host.Instruction {
	deposit := NewDepositInstruction(userSource, addrs.VaultA, user, amountIn)
	swap := NewSwapInstruction(&SwapInstructionAccounts{
		Payer:   user,
		Pool:    addrs.Pool,
		UserOut: userOut,
		VaultA:  addrs.VaultA,
		VaultB:  addrs.VaultB,
	})
	return []host.Instruction{deposit, swap}
}

// ToSolana converts a host instruction into the wire form used for live
// cluster submission.
func ToSolana(ix host.Instruction) *solana.GenericInstruction {
	metas := make([]*solana.AccountMeta, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		metas[i] = &solana.AccountMeta{
			PublicKey:  meta.Pubkey,
			IsSigner:   meta.IsSigner,
			IsWritable: meta.IsWritable,
		}
	}
	return solana.NewInstruction(ix.ProgramID, metas, ix.Data)
}
