package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"fixedswap/pkg/client"
)

var (
	quoteRate   uint64
	quoteAmount uint64
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Preview the quote-asset output for a base-asset deposit",
	RunE: func(cmd *cobra.Command, args []string) error {
		exact := client.Quote(
			math.NewIntFromUint64(quoteAmount),
			math.NewIntFromUint64(quoteRate),
		)
		fmt.Printf("amount in:  %d base atoms\n", quoteAmount)
		fmt.Printf("rate:       %d quote atoms per 10^9 base atoms\n", quoteRate)
		fmt.Printf("amount out: %s quote atoms\n", exact)
		if !exact.IsUint64() {
			fmt.Println("note: the program would reject this order as too large")
		}
		return nil
	},
}

func init() {
	quoteCmd.Flags().Uint64Var(&quoteRate, "rate", 0, "conversion rate (required)")
	quoteCmd.Flags().Uint64Var(&quoteAmount, "amount", 0, "input amount in base atoms (required)")
	_ = quoteCmd.MarkFlagRequired("rate")
	_ = quoteCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(quoteCmd)
}
