package client

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"fixedswap/pkg/host"
	"fixedswap/pkg/program"
	"fixedswap/pkg/token"
)

// Setup builders for the accounts around a pool: mints, user token
// accounts, and liquidity funding. The initializer creates the pool and
// vaults itself; everything here is caller-side furniture.

// NewCreateAccountInstruction asks the account-creation service for a fresh
// account of the given size and owner, funded to rent exemption.
func NewCreateAccountInstruction(funder, newAccount, owner solana.PublicKey, lamports, space uint64) host.Instruction {
	data := make([]byte, 4+8+8+32)
	binary.LittleEndian.PutUint32(data[0:4], 0) // CreateAccount
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	binary.LittleEndian.PutUint64(data[12:20], space)
	copy(data[20:52], owner[:])

	return host.Instruction{
		ProgramID: program.SystemProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(funder, true, true),
			host.Meta(newAccount, true, true),
		},
		Data: data,
	}
}

// NewInitializeMintInstruction writes a mint record with the given decimals
// and authority.
func NewInitializeMintInstruction(mint, authority solana.PublicKey, decimals uint8) host.Instruction {
	data := make([]byte, 1+1+32+1)
	data[0] = token.InstructionInitializeMint2
	data[1] = decimals
	copy(data[2:34], authority[:])
	data[34] = 0 // no freeze authority

	return host.Instruction{
		ProgramID: program.TokenProgramID,
		Accounts:  []host.AccountMeta{host.Meta(mint, false, true)},
		Data:      data,
	}
}

// NewInitializeTokenAccountInstruction initializes a token account for mint
// owned by owner.
func NewInitializeTokenAccountInstruction(account, mint, owner solana.PublicKey) host.Instruction {
	data := make([]byte, 1+32)
	data[0] = token.InstructionInitializeAccount3
	copy(data[1:33], owner[:])

	return host.Instruction{
		ProgramID: program.TokenProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(account, false, true),
			host.Meta(mint, false, false),
		},
		Data: data,
	}
}

// NewMintToInstruction credits freshly minted atoms to dest; authority must
// be the mint authority.
func NewMintToInstruction(mint, dest, authority solana.PublicKey, amount uint64) host.Instruction {
	data := make([]byte, 1+8)
	data[0] = token.InstructionMintTo
	binary.LittleEndian.PutUint64(data[1:9], amount)

	return host.Instruction{
		ProgramID: program.TokenProgramID,
		Accounts: []host.AccountMeta{
			host.Meta(mint, false, true),
			host.Meta(dest, false, true),
			host.Meta(authority, true, false),
		},
		Data: data,
	}
}
