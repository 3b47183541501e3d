package token

import (
	"encoding/binary"
	"errors"

	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
)

// Instruction opcodes, matching the standard token service wire format.
const (
	InstructionTransfer           uint8 = 3
	InstructionMintTo             uint8 = 7
	InstructionInitializeAccount3 uint8 = 18
	InstructionInitializeMint2    uint8 = 20
)

var (
	ErrInvalidInstruction = errors.New("token: invalid instruction data")
	ErrNotEnoughAccounts  = errors.New("token: not enough account keys")
	ErrMissingSignature   = errors.New("token: missing required signature")
	ErrNotOwnedByToken    = errors.New("token: account not owned by token program")
)

// Program executes token instructions against host accounts.
type Program struct{}

func New() *Program { return &Program{} }

func (*Program) ID() solana.PublicKey { return solana.TokenProgramID }

func (p *Program) Execute(ctx host.ExecutionContext, data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstruction
	}
	switch data[0] {
	case InstructionTransfer:
		return p.transfer(ctx, data[1:])
	case InstructionMintTo:
		return p.mintTo(ctx, data[1:])
	case InstructionInitializeAccount3:
		return p.initializeAccount3(ctx, data[1:])
	case InstructionInitializeMint2:
		return p.initializeMint2(ctx, data[1:])
	default:
		return ErrInvalidInstruction
	}
}

// initializeAccount3 sets up a custody account for a mint with an explicit
// owner taken from the payload. Accounts: account (writable), mint.
func (p *Program) initializeAccount3(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 32 {
		return ErrInvalidInstruction
	}
	owner := solana.PublicKeyFromBytes(data[:32])

	acct, err := ctx.Account(0)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	mint, err := ctx.Account(1)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	if !acct.Owner().Equals(solana.TokenProgramID) {
		return ErrNotOwnedByToken
	}

	mintRef, err := mint.BorrowData()
	if err != nil {
		return err
	}
	m, err := decodeMint(mintRef.Bytes())
	mintRef.Release()
	if err != nil {
		return err
	}
	if !m.IsInitialized {
		return ErrUninitialized
	}

	ref, err := acct.BorrowDataMut()
	if err != nil {
		return err
	}
	defer ref.Release()

	existing, err := decodeAccount(ref.Bytes())
	if err != nil {
		return err
	}
	if existing.State != StateUninitialized {
		return ErrAlreadyInitialized
	}

	return encodeAccount(&Account{
		Mint:  mint.Key(),
		Owner: owner,
		State: StateInitialized,
	}, ref.Bytes())
}

// initializeMint2 writes a mint record. Accounts: mint (writable).
// Payload: decimals, mint authority, freeze authority option.
func (p *Program) initializeMint2(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 1+32+1 {
		return ErrInvalidInstruction
	}
	decimals := data[0]
	authority := solana.PublicKeyFromBytes(data[1:33])

	mint, err := ctx.Account(0)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	if !mint.Owner().Equals(solana.TokenProgramID) {
		return ErrNotOwnedByToken
	}

	ref, err := mint.BorrowDataMut()
	if err != nil {
		return err
	}
	defer ref.Release()

	existing, err := decodeMint(ref.Bytes())
	if err != nil {
		return err
	}
	if existing.IsInitialized {
		return ErrAlreadyInitialized
	}

	return encodeMint(&Mint{
		MintAuthorityOption: 1,
		MintAuthority:       authority,
		Decimals:            decimals,
		IsInitialized:       true,
	}, ref.Bytes())
}

// transfer moves amount from source to destination. Accounts: source
// (writable), destination (writable), authority (signer). The authority
// must be the source account's owner.
func (p *Program) transfer(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 8 {
		return ErrInvalidInstruction
	}
	amount := binary.LittleEndian.Uint64(data[:8])

	from, err := ctx.Account(0)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	to, err := ctx.Account(1)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	authority, err := ctx.Account(2)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	if !ctx.IsSigner(2) {
		return ErrMissingSignature
	}

	fromRef, err := from.BorrowDataMut()
	if err != nil {
		return err
	}
	defer fromRef.Release()

	src, err := decodeAccount(fromRef.Bytes())
	if err != nil {
		return err
	}
	if src.State != StateInitialized {
		return ErrUninitialized
	}
	if !src.Owner.Equals(authority.Key()) {
		return ErrOwnerMismatch
	}
	if src.Amount < amount {
		return ErrInsufficientFunds
	}

	// Self-transfer would alias the exclusive borrow; settle it in place.
	if from.Key().Equals(to.Key()) {
		return nil
	}

	toRef, err := to.BorrowDataMut()
	if err != nil {
		return err
	}
	defer toRef.Release()

	dst, err := decodeAccount(toRef.Bytes())
	if err != nil {
		return err
	}
	if dst.State != StateInitialized {
		return ErrUninitialized
	}
	if !dst.Mint.Equals(src.Mint) {
		return ErrMintMismatch
	}
	if dst.Amount+amount < dst.Amount {
		return ErrAmountOverflow
	}

	setBalance(fromRef.Bytes(), src.Amount-amount)
	setBalance(toRef.Bytes(), dst.Amount+amount)
	return nil
}

// mintTo credits freshly minted atoms. Accounts: mint (writable),
// destination (writable), mint authority (signer).
func (p *Program) mintTo(ctx host.ExecutionContext, data []byte) error {
	if len(data) < 8 {
		return ErrInvalidInstruction
	}
	amount := binary.LittleEndian.Uint64(data[:8])

	mint, err := ctx.Account(0)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	dest, err := ctx.Account(1)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	authority, err := ctx.Account(2)
	if err != nil {
		return ErrNotEnoughAccounts
	}
	if !ctx.IsSigner(2) {
		return ErrMissingSignature
	}

	mintRef, err := mint.BorrowDataMut()
	if err != nil {
		return err
	}
	defer mintRef.Release()

	m, err := decodeMint(mintRef.Bytes())
	if err != nil {
		return err
	}
	if !m.IsInitialized {
		return ErrUninitialized
	}
	if m.MintAuthorityOption == 0 || !m.MintAuthority.Equals(authority.Key()) {
		return ErrOwnerMismatch
	}

	destRef, err := dest.BorrowDataMut()
	if err != nil {
		return err
	}
	defer destRef.Release()

	dst, err := decodeAccount(destRef.Bytes())
	if err != nil {
		return err
	}
	if dst.State != StateInitialized {
		return ErrUninitialized
	}
	if !dst.Mint.Equals(mint.Key()) {
		return ErrMintMismatch
	}
	if dst.Amount+amount < dst.Amount {
		return ErrAmountOverflow
	}

	m.Supply += amount
	if err := encodeMint(m, mintRef.Bytes()); err != nil {
		return err
	}
	setBalance(destRef.Bytes(), dst.Amount+amount)
	return nil
}
