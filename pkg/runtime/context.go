package runtime

import (
	"errors"

	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
)

// execContext implements host.ExecutionContext for one instruction, at the
// top level or nested under a CPI.
type execContext struct {
	rt        *Runtime
	programID solana.PublicKey
	metas     []host.AccountMeta
	accounts  []*host.Account
	intro     *txIntrospection
	signers   map[solana.PublicKey]bool
}

func (c *execContext) resolve() {
	c.accounts = make([]*host.Account, len(c.metas))
	for i, meta := range c.metas {
		c.accounts[i] = c.rt.account(meta.Pubkey)
	}
}

func (c *execContext) NumAccounts() int { return len(c.accounts) }

func (c *execContext) Account(i int) (*host.Account, error) {
	if i < 0 || i >= len(c.accounts) {
		return nil, host.ErrAccountIndex
	}
	return c.accounts[i], nil
}

func (c *execContext) IsSigner(i int) bool {
	if i < 0 || i >= len(c.metas) {
		return false
	}
	meta := c.metas[i]
	return meta.IsSigner && c.signers[meta.Pubkey]
}

func (c *execContext) IsWritable(i int) bool {
	if i < 0 || i >= len(c.metas) {
		return false
	}
	return c.metas[i].IsWritable
}

// Invoke runs an inner instruction to completion. Seed sets presented by
// the caller are verified by re-derivation under the caller's program id
// before the derived address counts as a signer; a caller cannot authorize
// an address it does not hold the seeds for.
func (c *execContext) Invoke(ix host.Instruction, seedSigners ...host.SignerSeeds) error {
	inner, ok := c.rt.programs[ix.ProgramID]
	if !ok {
		return ErrUnknownProgram
	}

	signers := make(map[solana.PublicKey]bool, len(c.signers)+len(seedSigners))
	for key, v := range c.signers {
		signers[key] = v
	}
	for _, seeds := range seedSigners {
		derived, err := solana.CreateProgramAddress(seeds, c.programID)
		if err != nil {
			return errors.Join(ErrBadSignerSeeds, err)
		}
		named := false
		for _, meta := range ix.Accounts {
			if meta.Pubkey.Equals(derived) {
				named = true
				break
			}
		}
		if !named {
			return ErrBadSignerSeeds
		}
		signers[derived] = true
	}

	innerCtx := &execContext{
		rt:        c.rt,
		programID: ix.ProgramID,
		metas:     ix.Accounts,
		intro:     c.intro, // introspection stays transaction-level
		signers:   signers,
	}
	innerCtx.resolve()
	return inner.Execute(innerCtx, ix.Data)
}

func (c *execContext) MinimumBalance(dataLen int) uint64 {
	return c.rt.MinimumBalance(dataLen)
}

func (c *execContext) Introspection() host.Introspection { return c.intro }

func (c *execContext) Log(format string, args ...any) {
	c.rt.logger.Sugar().Debugf(format, args...)
}

// txIntrospection exposes the transaction's top-level instruction list.
type txIntrospection struct {
	instructions []host.Instruction
	current      int
}

func (t *txIntrospection) CurrentIndex() int { return t.current }
func (t *txIntrospection) Len() int          { return len(t.instructions) }

func (t *txIntrospection) InstructionAt(i int) (host.Instruction, error) {
	if i < 0 || i >= len(t.instructions) {
		return host.Instruction{}, host.ErrAccountIndex
	}
	return t.instructions[i], nil
}
