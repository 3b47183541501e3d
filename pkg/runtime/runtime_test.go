package runtime

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"fixedswap/pkg/host"
)

func createAccountData(lamports, space uint64, owner solana.PublicKey) []byte {
	data := make([]byte, 4+8+8+32)
	binary.LittleEndian.PutUint32(data[0:4], sysCreateAccount)
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	binary.LittleEndian.PutUint64(data[12:20], space)
	copy(data[20:52], owner[:])
	return data
}

func transferData(lamports uint64) []byte {
	data := make([]byte, 4+8)
	binary.LittleEndian.PutUint32(data[0:4], sysTransfer)
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	return data
}

func TestCreateAccount(t *testing.T) {
	rt := New(nil)
	funder := solana.NewWallet().PublicKey()
	fresh := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	rt.Airdrop(funder, 10_000_000_000)

	rent := rt.MinimumBalance(100)
	tx := Transaction{
		Instructions: []host.Instruction{{
			ProgramID: solana.SystemProgramID,
			Accounts: []host.AccountMeta{
				host.Meta(funder, true, true),
				host.Meta(fresh, true, true),
			},
			Data: createAccountData(rent, 100, owner),
		}},
		Signers: []solana.PublicKey{funder, fresh},
	}
	require.NoError(t, rt.SendTransaction(tx))

	acc := rt.Account(fresh)
	require.NotNil(t, acc)
	require.Equal(t, owner, acc.Owner())
	require.Equal(t, rent, acc.Lamports())
	require.Equal(t, 100, acc.DataLen())
	require.Equal(t, 10_000_000_000-rent, rt.Account(funder).Lamports())
}

func TestCreateAccountRequiresBothSignatures(t *testing.T) {
	rt := New(nil)
	funder := solana.NewWallet().PublicKey()
	fresh := solana.NewWallet().PublicKey()
	rt.Airdrop(funder, 10_000_000_000)

	tx := Transaction{
		Instructions: []host.Instruction{{
			ProgramID: solana.SystemProgramID,
			Accounts: []host.AccountMeta{
				host.Meta(funder, true, true),
				host.Meta(fresh, true, true),
			},
			Data: createAccountData(rt.MinimumBalance(0), 0, solana.SystemProgramID),
		}},
		Signers: []solana.PublicKey{funder},
	}
	require.ErrorIs(t, rt.SendTransaction(tx), ErrMissingSignature)
}

func TestCreateAccountRejectsReuse(t *testing.T) {
	rt := New(nil)
	funder := solana.NewWallet().PublicKey()
	fresh := solana.NewWallet().PublicKey()
	rt.Airdrop(funder, 20_000_000_000)

	ix := host.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(funder, true, true),
			host.Meta(fresh, true, true),
		},
		Data: createAccountData(rt.MinimumBalance(10), 10, solana.TokenProgramID),
	}
	signers := []solana.PublicKey{funder, fresh}
	require.NoError(t, rt.SendTransaction(Transaction{Instructions: []host.Instruction{ix}, Signers: signers}))

	err := rt.SendTransaction(Transaction{Instructions: []host.Instruction{ix}, Signers: signers})
	require.ErrorIs(t, err, ErrAccountInUse)
}

func TestCreateAccountRejectsBelowRentExemption(t *testing.T) {
	rt := New(nil)
	funder := solana.NewWallet().PublicKey()
	fresh := solana.NewWallet().PublicKey()
	rt.Airdrop(funder, 20_000_000_000)

	tx := Transaction{
		Instructions: []host.Instruction{{
			ProgramID: solana.SystemProgramID,
			Accounts: []host.AccountMeta{
				host.Meta(funder, true, true),
				host.Meta(fresh, true, true),
			},
			Data: createAccountData(rt.MinimumBalance(100)-1, 100, solana.SystemProgramID),
		}},
		Signers: []solana.PublicKey{funder, fresh},
	}
	require.ErrorIs(t, rt.SendTransaction(tx), ErrNotRentExempt)
}

func TestTransactionRollsBackOnFailure(t *testing.T) {
	rt := New(nil)
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()
	rt.Airdrop(from, 1_000)

	transfer := host.Instruction{
		ProgramID: solana.SystemProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(from, true, true),
			host.Meta(to, false, true),
		},
		Data: transferData(400),
	}
	unknown := host.Instruction{
		ProgramID: solana.NewWallet().PublicKey(),
		Accounts:  []host.AccountMeta{host.Meta(from, true, true)},
	}

	err := rt.SendTransaction(Transaction{
		Instructions: []host.Instruction{transfer, unknown},
		Signers:      []solana.PublicKey{from},
	})
	require.ErrorIs(t, err, ErrUnknownProgram)
	require.ErrorContains(t, err, "instruction 1")

	// The successful transfer in the same transaction is undone.
	require.Equal(t, uint64(1_000), rt.Account(from).Lamports())
	require.Nil(t, rt.Account(to))
}

func TestTransferRequiresSignature(t *testing.T) {
	rt := New(nil)
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()
	rt.Airdrop(from, 1_000)

	tx := Transaction{
		Instructions: []host.Instruction{{
			ProgramID: solana.SystemProgramID,
			Accounts: []host.AccountMeta{
				host.Meta(from, true, true),
				host.Meta(to, false, true),
			},
			Data: transferData(100),
		}},
	}
	require.ErrorIs(t, rt.SendTransaction(tx), ErrMissingSignature)
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	rt := New(nil)
	require.ErrorIs(t, rt.Register(&systemProgram{}), ErrProgramConflict)
}
