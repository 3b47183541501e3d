package runtime

import (
	"encoding/binary"
	"errors"

	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
)

// System program instruction discriminants (little-endian u32).
const (
	sysCreateAccount uint32 = 0
	sysTransfer      uint32 = 2
)

var (
	ErrInvalidSystemData    = errors.New("system: invalid instruction data")
	ErrMissingSignature     = errors.New("system: missing required signature")
	ErrAccountInUse         = errors.New("system: account already in use")
	ErrInsufficientLamports = errors.New("system: insufficient lamports")
	ErrNotRentExempt        = errors.New("system: balance below rent-exempt minimum")
)

// systemProgram is the account-creation service builtin.
type systemProgram struct{}

func (*systemProgram) ID() solana.PublicKey { return solana.SystemProgramID }

func (s *systemProgram) Execute(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 4 {
		return ErrInvalidSystemData
	}
	switch binary.LittleEndian.Uint32(data[:4]) {
	case sysCreateAccount:
		return s.createAccount(ctx, data[4:])
	case sysTransfer:
		return s.transfer(ctx, data[4:])
	default:
		return ErrInvalidSystemData
	}
}

// createAccount funds, sizes and reassigns a brand-new account. Accounts:
// funder (signer, writable), new account (signer, writable). Payload:
// lamports u64, space u64, owner 32.
func (s *systemProgram) createAccount(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 48 {
		return ErrInvalidSystemData
	}
	lamports := binary.LittleEndian.Uint64(data[0:8])
	space := binary.LittleEndian.Uint64(data[8:16])
	owner := solana.PublicKeyFromBytes(data[16:48])

	funder, err := ctx.Account(0)
	if err != nil {
		return err
	}
	newAccount, err := ctx.Account(1)
	if err != nil {
		return err
	}
	if !ctx.IsSigner(0) || !ctx.IsSigner(1) {
		return ErrMissingSignature
	}

	if !newAccount.Owner().Equals(solana.SystemProgramID) ||
		newAccount.DataLen() > 0 || newAccount.Lamports() > 0 {
		return ErrAccountInUse
	}
	if funder.Lamports() < lamports {
		return ErrInsufficientLamports
	}
	if lamports < ctx.MinimumBalance(int(space)) {
		return ErrNotRentExempt
	}

	if err := newAccount.Allocate(int(space)); err != nil {
		return err
	}
	funder.SetLamports(funder.Lamports() - lamports)
	newAccount.SetLamports(lamports)
	newAccount.SetOwner(owner)
	return nil
}

// transfer moves lamports between system accounts. Accounts: from (signer,
// writable), to (writable). Payload: lamports u64.
func (s *systemProgram) transfer(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 8 {
		return ErrInvalidSystemData
	}
	lamports := binary.LittleEndian.Uint64(data[:8])

	from, err := ctx.Account(0)
	if err != nil {
		return err
	}
	to, err := ctx.Account(1)
	if err != nil {
		return err
	}
	if !ctx.IsSigner(0) {
		return ErrMissingSignature
	}
	if from.Lamports() < lamports {
		return ErrInsufficientLamports
	}
	from.SetLamports(from.Lamports() - lamports)
	to.SetLamports(to.Lamports() + lamports)
	return nil
}
