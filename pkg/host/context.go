package host

import "github.com/gagliardetto/solana-go"

// ExecutionContext is what the host hands a program for one instruction:
// the resolved account list, CPI, rent, and introspection.
type ExecutionContext interface {
	NumAccounts() int
	Account(i int) (*Account, error)

	// IsSigner reports whether the account at index i signed, either via a
	// transaction signature or via seeds presented at an enclosing Invoke.
	IsSigner(i int) bool
	IsWritable(i int) bool

	// Invoke executes an inner instruction to completion before returning.
	// Each SignerSeeds must re-derive, under the calling program's identity,
	// an address named in the inner instruction's account list.
	Invoke(ix Instruction, signers ...SignerSeeds) error

	// MinimumBalance returns the rent-exempt minimum for an account holding
	// dataLen bytes.
	MinimumBalance(dataLen int) uint64

	Introspection() Introspection

	Log(format string, args ...any)
}

// Program is an executable registered with the host.
type Program interface {
	ID() solana.PublicKey
	Execute(ctx ExecutionContext, data []byte) error
}
