package program

import (
	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
)

// SwapProgram is the fixed-rate swap program entrypoint.
type SwapProgram struct{}

func New() *SwapProgram { return &SwapProgram{} }

func (*SwapProgram) ID() solana.PublicKey { return ProgramID }

// Execute dispatches on the opcode byte: 0 initializes a pool, 1 swaps.
func (p *SwapProgram) Execute(ctx host.ExecutionContext, data []byte) error {
	if len(data) == 0 {
		return ErrMalformedInstruction
	}
	switch data[0] {
	case OpInitialize:
		return processInitialize(ctx, data[1:])
	case OpSwap:
		return processSwap(ctx)
	default:
		return ErrMalformedInstruction
	}
}
