package program

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
	"fixedswap/pkg/token"
)

// Transfer payload: opcode byte followed by a little-endian u64 amount.
const transferPayloadLen = 9

// Destination position in a token transfer account list (source, dest,
// authority).
const transferDestIndex = 1

// ValidateDeposit authenticates, from the transaction's immutable
// instruction list alone, that the instruction immediately before the
// current one is a token transfer into vaultA, and returns its amount.
//
// The amount is trusted without checking balances: the transaction commits
// all-or-nothing, so if control reached this code the preceding transfer
// already succeeded.
func ValidateDeposit(intro host.Introspection, vaultA solana.PublicKey) (uint64, error) {
	cur := intro.CurrentIndex()
	if cur == 0 {
		return 0, ErrNoPrecedingDeposit
	}

	curIx, err := intro.InstructionAt(cur)
	if err != nil {
		return 0, ErrMalformedInstruction.withCause(err)
	}
	// Reached under an invocation not addressed to this program, e.g. a
	// nested call from another program.
	if !curIx.ProgramID.Equals(ProgramID) {
		return 0, ErrUnexpectedInvocation
	}

	prev, err := intro.InstructionAt(cur - 1)
	if err != nil {
		return 0, ErrMalformedInstruction.withCause(err)
	}
	if !prev.ProgramID.Equals(TokenProgramID) {
		return 0, ErrWrongService
	}
	if len(prev.Data) < transferPayloadLen {
		return 0, ErrShortTransferPayload
	}
	if prev.Data[0] != token.InstructionTransfer {
		return 0, ErrNotTransfer
	}
	// A committed transfer always names source, dest, authority.
	if len(prev.Accounts) <= transferDestIndex {
		return 0, ErrWrongDestination
	}
	if !prev.Accounts[transferDestIndex].Pubkey.Equals(vaultA) {
		return 0, ErrWrongDestination
	}

	return binary.LittleEndian.Uint64(prev.Data[1:transferPayloadLen]), nil
}
