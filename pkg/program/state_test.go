package program

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"fixedswap/pkg/host"
)

func TestPoolFieldOffsets(t *testing.T) {
	vaultA := solana.NewWallet().PublicKey()
	vaultB := solana.NewWallet().PublicKey()
	baseMint := solana.NewWallet().PublicKey()
	quoteMint := solana.NewWallet().PublicKey()

	raw := make([]byte, PoolLen)
	binary.LittleEndian.PutUint64(raw[0:8], 2_500_000_000)
	binary.LittleEndian.PutUint64(raw[8:16], 1)
	copy(raw[16:48], vaultA[:])
	copy(raw[48:80], vaultB[:])
	copy(raw[80:112], baseMint[:])
	copy(raw[112:144], quoteMint[:])
	raw[144] = 254

	p, err := DecodePool(raw)
	require.NoError(t, err)
	require.Equal(t, uint128.New(2_500_000_000, 1), p.Rate)
	require.Equal(t, vaultA, p.VaultA)
	require.Equal(t, vaultB, p.VaultB)
	require.Equal(t, baseMint, p.BaseMint)
	require.Equal(t, quoteMint, p.QuoteMint)
	require.Equal(t, uint8(254), p.Bump)

	out := make([]byte, PoolLen)
	require.NoError(t, p.Encode(out))
	require.Equal(t, raw, out)
}

func TestDecodePoolRejectsShortRecord(t *testing.T) {
	_, err := DecodePool(make([]byte, PoolLen-1))
	require.ErrorIs(t, err, ErrMalformedAccount)

	p := &Pool{}
	require.ErrorIs(t, p.Encode(make([]byte, PoolLen-1)), ErrMalformedAccount)
}

func TestSignerSeedsRederivePool(t *testing.T) {
	baseMint := solana.NewWallet().PublicKey()
	quoteMint := solana.NewWallet().PublicKey()
	pool, bump, err := DerivePoolAddress(baseMint, quoteMint)
	require.NoError(t, err)

	p := &Pool{BaseMint: baseMint, QuoteMint: quoteMint, Bump: bump}
	seeds := p.SignerSeeds()
	derived, err := solana.CreateProgramAddress(seeds, ProgramID)
	require.NoError(t, err)
	require.Equal(t, pool, derived)
}

func TestSignerSeedsAreCopies(t *testing.T) {
	p := &Pool{
		BaseMint:  solana.NewWallet().PublicKey(),
		QuoteMint: solana.NewWallet().PublicKey(),
		Bump:      250,
	}
	seeds := p.SignerSeeds()
	seeds[0][0] ^= 0xFF
	require.NotEqual(t, p.BaseMint[0], seeds[0][0])
}

func TestReadWritePoolRoundTrip(t *testing.T) {
	p := &Pool{
		Rate:      uint128.From64(1_000_000_000),
		VaultA:    solana.NewWallet().PublicKey(),
		VaultB:    solana.NewWallet().PublicKey(),
		BaseMint:  solana.NewWallet().PublicKey(),
		QuoteMint: solana.NewWallet().PublicKey(),
		Bump:      255,
	}
	acc := host.NewAccount(solana.NewWallet().PublicKey(), ProgramID, 0, make([]byte, PoolLen))
	require.NoError(t, WritePool(acc, p))

	got, err := ReadPool(acc)
	require.NoError(t, err)
	require.Equal(t, p, got)

	// Both helpers release their borrows on return.
	w, err := acc.BorrowDataMut()
	require.NoError(t, err)
	w.Release()
}
