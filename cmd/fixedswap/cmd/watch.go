package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"fixedswap/pkg/sol"
	"fixedswap/pkg/watch"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <pool>",
	Short: "Stream a pool's vault balances",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		poolKey, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid pool address: %w", err)
		}
		if len(cfg.RPCEndpoints) == 0 || cfg.WSEndpoint == "" {
			return fmt.Errorf("rpc_endpoints and ws_endpoint must be configured")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		rpcPool, err := sol.NewRPCPool(ctx, cfg.RPCEndpoints, cfg.JitoEndpoint, cfg.RateLimit, logger)
		if err != nil {
			return err
		}
		pool, err := rpcPool.GetClient().GetPool(ctx, poolKey)
		if err != nil {
			return err
		}
		fmt.Println(pool)

		watcher, err := watch.NewVaultWatcher(ctx, cfg.WSEndpoint, pool, logger)
		if err != nil {
			return err
		}
		defer watcher.Close()

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				balances, ok := watcher.Balances()
				if !ok {
					continue
				}
				fmt.Printf("slot %d: base=%d quote=%d\n",
					balances.Slot, balances.Base, balances.Quote)
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 5*time.Second, "print interval")
	rootCmd.AddCommand(watchCmd)
}
