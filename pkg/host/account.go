// Package host defines the execution-environment boundary the swap program
// runs against: accounts with borrow discipline, instructions, cross-program
// invocation, and transaction-level instruction introspection. The in-memory
// implementation lives in pkg/runtime.
package host

import (
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrAccountBorrowed = errors.New("account data already borrowed")
	ErrAccountIndex    = errors.New("account index out of range")
)

// Account is the transaction-local view of one ledger account. Execution is
// single-threaded per transaction, so borrow tracking is plain counters: any
// number of concurrent read borrows, or exactly one exclusive borrow.
type Account struct {
	key      solana.PublicKey
	owner    solana.PublicKey
	lamports uint64
	data     []byte

	readBorrows int
	writeBorrow bool
}

func NewAccount(key, owner solana.PublicKey, lamports uint64, data []byte) *Account {
	return &Account{key: key, owner: owner, lamports: lamports, data: data}
}

func (a *Account) Key() solana.PublicKey   { return a.key }
func (a *Account) Owner() solana.PublicKey { return a.owner }
func (a *Account) Lamports() uint64        { return a.lamports }
func (a *Account) DataLen() int            { return len(a.data) }

func (a *Account) SetOwner(owner solana.PublicKey) { a.owner = owner }
func (a *Account) SetLamports(lamports uint64)     { a.lamports = lamports }

// Allocate replaces the account's data with a zeroed buffer of n bytes.
// Fails while any borrow is outstanding.
func (a *Account) Allocate(n int) error {
	if a.writeBorrow || a.readBorrows > 0 {
		return ErrAccountBorrowed
	}
	a.data = make([]byte, n)
	return nil
}

// BorrowData takes a shared read borrow over the account data. The returned
// bytes must not be mutated; call Release when done.
func (a *Account) BorrowData() (*DataRef, error) {
	if a.writeBorrow {
		return nil, ErrAccountBorrowed
	}
	a.readBorrows++
	return &DataRef{acct: a}, nil
}

// BorrowDataMut takes the exclusive write borrow over the account data.
func (a *Account) BorrowDataMut() (*DataMutRef, error) {
	if a.writeBorrow || a.readBorrows > 0 {
		return nil, ErrAccountBorrowed
	}
	a.writeBorrow = true
	return &DataMutRef{acct: a}, nil
}

// Clone deep-copies the account's stored state (not its borrow state);
// used by the runtime to snapshot accounts before a transaction.
func (a *Account) Clone() *Account {
	data := make([]byte, len(a.data))
	copy(data, a.data)
	return &Account{key: a.key, owner: a.owner, lamports: a.lamports, data: data}
}

// DataRef is an outstanding shared borrow.
type DataRef struct {
	acct     *Account
	released bool
}

func (r *DataRef) Bytes() []byte { return r.acct.data }

func (r *DataRef) Release() {
	if !r.released {
		r.released = true
		r.acct.readBorrows--
	}
}

// DataMutRef is the outstanding exclusive borrow.
type DataMutRef struct {
	acct     *Account
	released bool
}

func (r *DataMutRef) Bytes() []byte { return r.acct.data }

func (r *DataMutRef) Release() {
	if !r.released {
		r.released = true
		r.acct.writeBorrow = false
	}
}
