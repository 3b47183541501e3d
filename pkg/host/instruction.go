package host

import "github.com/gagliardetto/solana-go"

// AccountMeta names one account an instruction touches.
type AccountMeta struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is one request addressed to a program: the target program,
// the ordered account list, and the raw payload.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// Meta builds an AccountMeta; small helper for instruction builders.
func Meta(key solana.PublicKey, signer, writable bool) AccountMeta {
	return AccountMeta{Pubkey: key, IsSigner: signer, IsWritable: writable}
}

// SignerSeeds is the ordered seed material (bump last) that re-derives one
// program address. Presenting it to Invoke authorizes that address as a
// signer for the inner instruction; it cannot be forged without the seeds.
type SignerSeeds [][]byte

// Introspection is the read-only register exposing the ordered instruction
// list of the currently executing transaction.
type Introspection interface {
	// CurrentIndex is the transaction-level position of the instruction
	// being executed, counting top-level instructions only.
	CurrentIndex() int
	Len() int
	InstructionAt(i int) (Instruction, error)
}
