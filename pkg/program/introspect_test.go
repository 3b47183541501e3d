package program

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"fixedswap/pkg/host"
	"fixedswap/pkg/token"
)

type fakeIntrospection struct {
	instructions []host.Instruction
	current      int
}

func (f *fakeIntrospection) CurrentIndex() int { return f.current }
func (f *fakeIntrospection) Len() int          { return len(f.instructions) }
func (f *fakeIntrospection) InstructionAt(i int) (host.Instruction, error) {
	if i < 0 || i >= len(f.instructions) {
		return host.Instruction{}, ErrMalformedInstruction
	}
	return f.instructions[i], nil
}

func transferData(amount uint64) []byte {
	data := make([]byte, 9)
	data[0] = token.InstructionTransfer
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

func depositInstruction(source, vaultA, authority solana.PublicKey, amount uint64) host.Instruction {
	return host.Instruction{
		ProgramID: TokenProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(source, false, true),
			host.Meta(vaultA, false, true),
			host.Meta(authority, true, false),
		},
		Data: transferData(amount),
	}
}

func swapInstruction() host.Instruction {
	return host.Instruction{ProgramID: ProgramID, Data: []byte{OpSwap}}
}

func TestValidateDepositAcceptsPrecedingTransfer(t *testing.T) {
	vaultA := solana.NewWallet().PublicKey()
	intro := &fakeIntrospection{
		instructions: []host.Instruction{
			depositInstruction(solana.NewWallet().PublicKey(), vaultA, solana.NewWallet().PublicKey(), 1_000_000_000),
			swapInstruction(),
		},
		current: 1,
	}

	amount, err := ValidateDeposit(intro, vaultA)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000_000), amount)
}

func TestValidateDepositRejections(t *testing.T) {
	vaultA := solana.NewWallet().PublicKey()
	source := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	shortPayload := depositInstruction(source, vaultA, authority, 0)
	shortPayload.Data = shortPayload.Data[:8]

	mintTo := depositInstruction(source, vaultA, authority, 500)
	mintTo.Data[0] = token.InstructionMintTo

	wrongDest := depositInstruction(source, solana.NewWallet().PublicKey(), authority, 500)

	missingDest := depositInstruction(source, vaultA, authority, 500)
	missingDest.Accounts = missingDest.Accounts[:1]

	systemIx := depositInstruction(source, vaultA, authority, 500)
	systemIx.ProgramID = SystemProgramID

	cases := []struct {
		name string
		prev host.Instruction
		want error
	}{
		{"wrong program", systemIx, ErrWrongService},
		{"short payload", shortPayload, ErrShortTransferPayload},
		{"not a transfer", mintTo, ErrNotTransfer},
		{"wrong destination", wrongDest, ErrWrongDestination},
		{"missing destination", missingDest, ErrWrongDestination},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intro := &fakeIntrospection{
				instructions: []host.Instruction{tc.prev, swapInstruction()},
				current:      1,
			}
			_, err := ValidateDeposit(intro, vaultA)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateDepositRejectsFirstInstruction(t *testing.T) {
	intro := &fakeIntrospection{
		instructions: []host.Instruction{swapInstruction()},
		current:      0,
	}
	_, err := ValidateDeposit(intro, solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrNoPrecedingDeposit)
}

func TestValidateDepositRejectsNestedInvocation(t *testing.T) {
	vaultA := solana.NewWallet().PublicKey()
	outer := host.Instruction{ProgramID: solana.NewWallet().PublicKey(), Data: []byte{OpSwap}}
	intro := &fakeIntrospection{
		instructions: []host.Instruction{
			depositInstruction(solana.NewWallet().PublicKey(), vaultA, solana.NewWallet().PublicKey(), 1),
			outer,
		},
		current: 1,
	}
	_, err := ValidateDeposit(intro, vaultA)
	require.ErrorIs(t, err, ErrUnexpectedInvocation)
}
