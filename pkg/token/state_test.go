package token

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"fixedswap/pkg/host"
)

func TestAccountLayoutAmountOffset(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	acc := &Account{
		Mint:   mint,
		Owner:  owner,
		Amount: 42_000_000,
		State:  StateInitialized,
	}
	raw := make([]byte, AccountLen)
	require.NoError(t, encodeAccount(acc, raw))

	// The codec must place the amount where raw readers expect it.
	require.Equal(t, uint64(42_000_000), binary.LittleEndian.Uint64(raw[64:72]))

	got, err := Balance(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(42_000_000), got)

	decoded, err := decodeAccount(raw)
	require.NoError(t, err)
	require.Equal(t, acc, decoded)
}

func TestSetBalanceOnlyTouchesAmount(t *testing.T) {
	acc := &Account{
		Mint:   solana.NewWallet().PublicKey(),
		Owner:  solana.NewWallet().PublicKey(),
		Amount: 1,
		State:  StateInitialized,
	}
	raw := make([]byte, AccountLen)
	require.NoError(t, encodeAccount(acc, raw))

	setBalance(raw, 999)

	decoded, err := decodeAccount(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(999), decoded.Amount)
	require.Equal(t, acc.Mint, decoded.Mint)
	require.Equal(t, acc.Owner, decoded.Owner)
	require.Equal(t, StateInitialized, decoded.State)
}

func TestBalanceRejectsShortData(t *testing.T) {
	_, err := Balance(make([]byte, AccountLen-1))
	require.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestMintCodecLength(t *testing.T) {
	m := &Mint{
		MintAuthorityOption: 1,
		MintAuthority:       solana.NewWallet().PublicKey(),
		Supply:              5_000,
		Decimals:            9,
		IsInitialized:       true,
	}
	raw := make([]byte, MintLen)
	require.NoError(t, encodeMint(m, raw))

	decoded, err := decodeMint(raw)
	require.NoError(t, err)
	require.Equal(t, m, decoded)

	_, err = decodeMint(make([]byte, MintLen-1))
	require.ErrorIs(t, err, ErrInvalidAccountData)
}

func TestViewAccountReleasesBorrow(t *testing.T) {
	acc := &Account{
		Mint:   solana.NewWallet().PublicKey(),
		Owner:  solana.NewWallet().PublicKey(),
		Amount: 7,
		State:  StateInitialized,
	}
	raw := make([]byte, AccountLen)
	require.NoError(t, encodeAccount(acc, raw))

	h := host.NewAccount(solana.NewWallet().PublicKey(), solana.TokenProgramID, 0, raw)
	view, err := ViewAccount(h)
	require.NoError(t, err)
	require.Equal(t, uint64(7), view.Amount)

	w, err := h.BorrowDataMut()
	require.NoError(t, err)
	w.Release()
}
