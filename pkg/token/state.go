// Package token implements the minimal fungible-token service the swap
// facility consumes: custody account initialization and balance transfers,
// with the standard 165-byte token account layout.
package token

import (
	"bytes"
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
)

const (
	// AccountLen is the token account size.
	AccountLen = 165
	// MintLen is the mint account size.
	MintLen = 82

	// amountOffset is where the u64 balance sits in a token account.
	amountOffset = 64
)

// Account states.
const (
	StateUninitialized uint8 = 0
	StateInitialized   uint8 = 1
)

var (
	ErrInvalidAccountData = errors.New("token: unexpected account data")
	ErrAlreadyInitialized = errors.New("token: account already initialized")
	ErrUninitialized      = errors.New("token: account not initialized")
	ErrOwnerMismatch      = errors.New("token: owner mismatch")
	ErrMintMismatch       = errors.New("token: mint mismatch")
	ErrInsufficientFunds  = errors.New("token: insufficient funds")
	ErrAmountOverflow     = errors.New("token: balance overflow")
)

// Account is the token account layout. Field order matches the wire layout
// exactly; the whole struct round-trips through the bin codec.
type Account struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

// Mint is the mint account layout.
type Mint struct {
	MintAuthorityOption   uint32
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              uint8
	IsInitialized         bool
	FreezeAuthorityOption uint32
	FreezeAuthority       solana.PublicKey
}

func decodeAccount(data []byte) (*Account, error) {
	if len(data) < AccountLen {
		return nil, ErrInvalidAccountData
	}
	acc := &Account{}
	if err := bin.NewBinDecoder(data).Decode(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func encodeAccount(acc *Account, dst []byte) error {
	if len(dst) < AccountLen {
		return ErrInvalidAccountData
	}
	var buf bytes.Buffer
	if err := bin.NewBinEncoder(&buf).Encode(acc); err != nil {
		return err
	}
	copy(dst, buf.Bytes())
	return nil
}

func decodeMint(data []byte) (*Mint, error) {
	if len(data) < MintLen {
		return nil, ErrInvalidAccountData
	}
	m := &Mint{}
	if err := bin.NewBinDecoder(data).Decode(m); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeMint(m *Mint, dst []byte) error {
	if len(dst) < MintLen {
		return ErrInvalidAccountData
	}
	var buf bytes.Buffer
	if err := bin.NewBinEncoder(&buf).Encode(m); err != nil {
		return err
	}
	copy(dst, buf.Bytes())
	return nil
}

// Balance reads the u64 amount straight from raw token account bytes.
func Balance(data []byte) (uint64, error) {
	if len(data) < AccountLen {
		return 0, ErrInvalidAccountData
	}
	return binary.LittleEndian.Uint64(data[amountOffset : amountOffset+8]), nil
}

func setBalance(data []byte, v uint64) {
	binary.LittleEndian.PutUint64(data[amountOffset:amountOffset+8], v)
}

// ViewAccount decodes a token account under a shared borrow.
func ViewAccount(acc *host.Account) (*Account, error) {
	ref, err := acc.BorrowData()
	if err != nil {
		return nil, err
	}
	defer ref.Release()
	return decodeAccount(ref.Bytes())
}
