// Package program implements the fixed-rate swap program: pool
// initialization, instruction-chain validation of the inbound deposit, the
// rate conversion, and the authorized outbound transfer.
package program

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

// Instruction opcodes (first payload byte).
const (
	OpInitialize uint8 = 0
	OpSwap       uint8 = 1
)

// RateScale is the base-asset atom count one rate unit prices: rate is
// quote atoms per 10^9 base atoms.
const RateScale = 1_000_000_000

var (
	// ProgramID is this program's own identity, fixed at startup.
	ProgramID = solana.PublicKeyFromBytes(bytes.Repeat([]byte{0x05}, 32))

	// TokenProgramID is the token service the vaults belong to.
	TokenProgramID = solana.TokenProgramID

	// SystemProgramID is the account-creation service.
	SystemProgramID = solana.SystemProgramID

	// SysvarInstructionsID is the transaction introspection register.
	SysvarInstructionsID = solana.SysVarInstructionsPubkey
)
