// Package runtime is an in-memory transaction host: it executes a
// transaction's instructions strictly in order against a single-threaded
// account ledger, committing all of them or none.
package runtime

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"fixedswap/pkg/host"
	"fixedswap/pkg/token"
)

// Rent parameters: two years of exemption at 3480 lamports per byte-year,
// charged on data length plus the 128-byte account overhead.
const (
	lamportsPerByteYear = 3480
	exemptionYears      = 2
	accountOverhead     = 128
)

var (
	ErrUnknownProgram  = errors.New("runtime: no program registered for id")
	ErrProgramConflict = errors.New("runtime: program id already registered")
	ErrBadSignerSeeds  = errors.New("runtime: signer seeds do not derive a named account")
)

// Transaction is an ordered, atomic batch of instructions. Signers are the
// keys whose signatures the host has already verified; signature
// verification itself is outside this runtime.
type Transaction struct {
	Instructions []host.Instruction
	Signers      []solana.PublicKey
}

// Runtime holds the ledger and the registered programs.
type Runtime struct {
	accounts map[solana.PublicKey]*host.Account
	programs map[solana.PublicKey]host.Program
	logger   *zap.Logger
}

// New builds a runtime with the account-creation and token services
// registered as builtins.
func New(logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	rt := &Runtime{
		accounts: make(map[solana.PublicKey]*host.Account),
		programs: make(map[solana.PublicKey]host.Program),
		logger:   logger,
	}
	rt.programs[solana.SystemProgramID] = &systemProgram{}
	rt.programs[solana.TokenProgramID] = token.New()
	return rt
}

// Register adds a program to the runtime.
func (rt *Runtime) Register(p host.Program) error {
	if _, ok := rt.programs[p.ID()]; ok {
		return ErrProgramConflict
	}
	rt.programs[p.ID()] = p
	return nil
}

// Airdrop credits lamports to a system-owned account, creating it if
// needed.
func (rt *Runtime) Airdrop(key solana.PublicKey, lamports uint64) {
	acc := rt.account(key)
	acc.SetLamports(acc.Lamports() + lamports)
}

// Account returns the ledger entry for key, or nil if it has never been
// touched.
func (rt *Runtime) Account(key solana.PublicKey) *host.Account {
	return rt.accounts[key]
}

// MinimumBalance is the rent-exempt minimum for dataLen bytes.
func (rt *Runtime) MinimumBalance(dataLen int) uint64 {
	return uint64(dataLen+accountOverhead) * lamportsPerByteYear * exemptionYears
}

// SendTransaction executes tx's instructions in order. Any failure restores
// every touched account to its pre-transaction state and returns the error.
func (rt *Runtime) SendTransaction(tx Transaction) error {
	snapshot := rt.snapshot(tx)

	signers := make(map[solana.PublicKey]bool, len(tx.Signers))
	for _, s := range tx.Signers {
		signers[s] = true
	}

	for i, ix := range tx.Instructions {
		if err := rt.execute(ix, tx.Instructions, i, signers); err != nil {
			rt.restore(snapshot)
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

func (rt *Runtime) execute(ix host.Instruction, txInstructions []host.Instruction, index int, signers map[solana.PublicKey]bool) error {
	prog, ok := rt.programs[ix.ProgramID]
	if !ok {
		return ErrUnknownProgram
	}

	ctx := &execContext{
		rt:        rt,
		programID: ix.ProgramID,
		metas:     ix.Accounts,
		intro:     &txIntrospection{instructions: txInstructions, current: index},
		signers:   signers,
	}
	ctx.resolve()
	return prog.Execute(ctx, ix.Data)
}

// account fetches or lazily creates the ledger entry for key. Untouched
// keys start as empty system-owned accounts.
func (rt *Runtime) account(key solana.PublicKey) *host.Account {
	if acc, ok := rt.accounts[key]; ok {
		return acc
	}
	acc := host.NewAccount(key, solana.SystemProgramID, 0, nil)
	rt.accounts[key] = acc
	return acc
}

type ledgerSnapshot struct {
	saved   map[solana.PublicKey]*host.Account
	created []solana.PublicKey
}

func (rt *Runtime) snapshot(tx Transaction) *ledgerSnapshot {
	snap := &ledgerSnapshot{saved: make(map[solana.PublicKey]*host.Account)}
	touch := func(key solana.PublicKey) {
		if _, seen := snap.saved[key]; seen {
			return
		}
		if acc, ok := rt.accounts[key]; ok {
			snap.saved[key] = acc.Clone()
		} else {
			snap.saved[key] = nil
			snap.created = append(snap.created, key)
		}
	}
	for _, ix := range tx.Instructions {
		for _, meta := range ix.Accounts {
			touch(meta.Pubkey)
		}
	}
	return snap
}

func (rt *Runtime) restore(snap *ledgerSnapshot) {
	for key, acc := range snap.saved {
		if acc != nil {
			rt.accounts[key] = acc
		}
	}
	for _, key := range snap.created {
		delete(rt.accounts, key)
	}
}
