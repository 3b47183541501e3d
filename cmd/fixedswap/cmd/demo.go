package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"fixedswap/pkg/client"
	"fixedswap/pkg/host"
	"fixedswap/pkg/program"
	"fixedswap/pkg/runtime"
	"fixedswap/pkg/token"
)

var (
	demoRate    uint64
	demoDeposit uint64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the full deposit+swap scenario on the in-memory host",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := runtime.New(logger)
		if err := rt.Register(program.New()); err != nil {
			return err
		}

		payer := solana.NewWallet().PublicKey()
		user := solana.NewWallet().PublicKey()
		baseMint := solana.NewWallet().PublicKey()
		quoteMint := solana.NewWallet().PublicKey()
		userBase := solana.NewWallet().PublicKey()
		userQuote := solana.NewWallet().PublicKey()

		rt.Airdrop(payer, 100_000_000_000)
		rt.Airdrop(user, 100_000_000_000)

		mintRent := rt.MinimumBalance(token.MintLen)
		acctRent := rt.MinimumBalance(token.AccountLen)

		// Mints, user token accounts, funded base balance.
		err := rt.SendTransaction(runtime.Transaction{
			Instructions: []host.Instruction{
				client.NewCreateAccountInstruction(payer, baseMint, program.TokenProgramID, mintRent, token.MintLen),
				client.NewInitializeMintInstruction(baseMint, payer, 9),
				client.NewCreateAccountInstruction(payer, quoteMint, program.TokenProgramID, mintRent, token.MintLen),
				client.NewInitializeMintInstruction(quoteMint, payer, 6),
				client.NewCreateAccountInstruction(payer, userBase, program.TokenProgramID, acctRent, token.AccountLen),
				client.NewInitializeTokenAccountInstruction(userBase, baseMint, user),
				client.NewCreateAccountInstruction(payer, userQuote, program.TokenProgramID, acctRent, token.AccountLen),
				client.NewInitializeTokenAccountInstruction(userQuote, quoteMint, user),
				client.NewMintToInstruction(baseMint, userBase, payer, 10*demoDeposit),
			},
			Signers: []solana.PublicKey{payer, baseMint, quoteMint, userBase, userQuote},
		})
		if err != nil {
			return fmt.Errorf("setup: %w", err)
		}

		addrs, err := client.DeriveAddresses(baseMint, quoteMint)
		if err != nil {
			return err
		}

		// Initialize the pool.
		err = rt.SendTransaction(runtime.Transaction{
			Instructions: []host.Instruction{
				client.NewInitializeInstruction(&client.InitializeInstructionAccounts{
					Payer:     payer,
					Pool:      addrs.Pool,
					VaultA:    addrs.VaultA,
					VaultB:    addrs.VaultB,
					BaseMint:  baseMint,
					QuoteMint: quoteMint,
				}, demoRate),
			},
			Signers: []solana.PublicKey{payer},
		})
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		fmt.Printf("pool %s initialized, rate=%d\n", addrs.Pool, demoRate)

		// Fund the quote vault so the pool has liquidity.
		err = rt.SendTransaction(runtime.Transaction{
			Instructions: []host.Instruction{
				client.NewMintToInstruction(quoteMint, addrs.VaultB, payer, 1_000_000_000_000),
			},
			Signers: []solana.PublicKey{payer},
		})
		if err != nil {
			return fmt.Errorf("fund quote vault: %w", err)
		}

		// Atomic deposit + swap.
		err = rt.SendTransaction(runtime.Transaction{
			Instructions: client.BuildSwapInstructions(user, userBase, userQuote, addrs, demoDeposit),
			Signers:      []solana.PublicKey{user},
		})
		if err != nil {
			return fmt.Errorf("swap: %w", err)
		}

		out, err := token.ViewAccount(rt.Account(userQuote))
		if err != nil {
			return err
		}
		fmt.Printf("deposited %d base atoms, received %d quote atoms\n", demoDeposit, out.Amount)
		return nil
	},
}

func init() {
	demoCmd.Flags().Uint64Var(&demoRate, "rate", 1_000_000_000, "conversion rate")
	demoCmd.Flags().Uint64Var(&demoDeposit, "deposit", 1_000_000_000, "deposit in base atoms")
	rootCmd.AddCommand(demoCmd)
}
