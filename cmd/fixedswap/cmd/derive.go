package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"fixedswap/pkg/client"
)

var deriveCmd = &cobra.Command{
	Use:   "derive <base-mint> <quote-mint>",
	Short: "Derive the pool and vault addresses for a mint pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		baseMint, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid base mint: %w", err)
		}
		quoteMint, err := solana.PublicKeyFromBase58(args[1])
		if err != nil {
			return fmt.Errorf("invalid quote mint: %w", err)
		}

		addrs, err := client.DeriveAddresses(baseMint, quoteMint)
		if err != nil {
			return err
		}

		fmt.Printf("pool:    %s (bump %d)\n", addrs.Pool, addrs.PoolBump)
		fmt.Printf("vault A: %s (bump %d)\n", addrs.VaultA, addrs.VaultABump)
		fmt.Printf("vault B: %s (bump %d)\n", addrs.VaultB, addrs.VaultBBump)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}
