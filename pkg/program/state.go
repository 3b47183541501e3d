package program

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"lukechampine.com/uint128"

	"fixedswap/pkg/host"
)

// Pool record layout, 145 bytes, exact offsets; no struct casting, every
// field goes through these offsets.
const (
	poolRateOffset      = 0
	poolVaultAOffset    = 16
	poolVaultBOffset    = 48
	poolBaseMintOffset  = 80
	poolQuoteMintOffset = 112
	poolBumpOffset      = 144

	// PoolLen is the exact persisted record size.
	PoolLen = 145
)

// Pool is the persistent pool record. Written once by the initializer and
// immutable thereafter; the swap path only reads it.
type Pool struct {
	// Rate is quote-asset atoms per 10^9 base-asset atoms.
	Rate uint128.Uint128

	VaultA solana.PublicKey
	VaultB solana.PublicKey

	// BaseMint, QuoteMint and Bump are the seed material that re-derives
	// this pool's own signing authority.
	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey
	Bump      uint8
}

// DecodePool reads a Pool out of raw account bytes.
func DecodePool(data []byte) (*Pool, error) {
	if len(data) < PoolLen {
		return nil, ErrMalformedAccount
	}
	p := &Pool{}
	p.Rate = uint128.FromBytes(data[poolRateOffset : poolRateOffset+16])
	p.VaultA = solana.PublicKeyFromBytes(data[poolVaultAOffset : poolVaultAOffset+32])
	p.VaultB = solana.PublicKeyFromBytes(data[poolVaultBOffset : poolVaultBOffset+32])
	p.BaseMint = solana.PublicKeyFromBytes(data[poolBaseMintOffset : poolBaseMintOffset+32])
	p.QuoteMint = solana.PublicKeyFromBytes(data[poolQuoteMintOffset : poolQuoteMintOffset+32])
	p.Bump = data[poolBumpOffset]
	return p, nil
}

// Encode writes the record into buf, which must hold at least PoolLen bytes.
func (p *Pool) Encode(buf []byte) error {
	if len(buf) < PoolLen {
		return ErrMalformedAccount
	}
	p.Rate.PutBytes(buf[poolRateOffset : poolRateOffset+16])
	copy(buf[poolVaultAOffset:poolVaultAOffset+32], p.VaultA[:])
	copy(buf[poolVaultBOffset:poolVaultBOffset+32], p.VaultB[:])
	copy(buf[poolBaseMintOffset:poolBaseMintOffset+32], p.BaseMint[:])
	copy(buf[poolQuoteMintOffset:poolQuoteMintOffset+32], p.QuoteMint[:])
	buf[poolBumpOffset] = p.Bump
	return nil
}

// SignerSeeds rebuilds the pool's signing authority from the stored seed
// material. The returned slices are copies, safe to hold after any borrow
// on the backing account is released.
func (p *Pool) SignerSeeds() host.SignerSeeds {
	base := make([]byte, 32)
	quote := make([]byte, 32)
	copy(base, p.BaseMint[:])
	copy(quote, p.QuoteMint[:])
	return host.SignerSeeds{base, quote, []byte{p.Bump}}
}

func (p *Pool) String() string {
	return fmt.Sprintf(
		"Pool{rate=%s,vault_a=%s,vault_b=%s,base_mint=%s,quote_mint=%s,bump=%d}",
		p.Rate.String(),
		base58.Encode(p.VaultA[:]),
		base58.Encode(p.VaultB[:]),
		base58.Encode(p.BaseMint[:]),
		base58.Encode(p.QuoteMint[:]),
		p.Bump,
	)
}

// ReadPool decodes the record under a shared borrow and releases the borrow
// before returning, so the caller holds no borrow across service calls.
func ReadPool(acc *host.Account) (*Pool, error) {
	ref, err := acc.BorrowData()
	if err != nil {
		return nil, ErrMalformedAccount.withCause(err)
	}
	defer ref.Release()
	return DecodePool(ref.Bytes())
}

// WritePool encodes the record under the exclusive borrow.
func WritePool(acc *host.Account, p *Pool) error {
	ref, err := acc.BorrowDataMut()
	if err != nil {
		return ErrMalformedAccount.withCause(err)
	}
	defer ref.Release()
	return p.Encode(ref.Bytes())
}
