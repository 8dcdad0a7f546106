package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"swapCandles/internal/chain"
	"swapCandles/internal/config"
)

func runChains(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, nil)
	if err != nil {
		return err
	}

	registry := chain.NewRegistry(cfg.ChainRPCURLs)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHAIN\tID\tALIASES\tRPC")
	for _, c := range chain.Chains() {
		url, err := registry.Resolve(c, cfg.RPCURL)
		if err != nil {
			return err
		}
		id, _ := chain.ExpectedChainID(c)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", c, id, strings.Join(c.Aliases(), ","), url)
	}
	return w.Flush()
}
