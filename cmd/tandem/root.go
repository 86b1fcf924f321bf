package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tandem-agent/tandem/pkg/agent"
	"github.com/tandem-agent/tandem/pkg/config"
	"github.com/tandem-agent/tandem/pkg/session"
)

func newRootCmd() *cobra.Command {
	var (
		model        string
		provider     string
		experimental bool
		noSession    bool
	)

	rootCmd := &cobra.Command{
		Use:           "tandem [task]",
		Short:         "tandem: a two-tier coding agent",
		Long:          "tandem drives a small model through workspace exploration and hands off to a larger model for the final work. With no arguments it starts an interactive session; with arguments it runs one task and exits.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if model != "" {
				cfg.ModelOverride = model
			}
			if provider != "" {
				cfg.Provider = provider
			}
			if experimental {
				cfg.Experimental = true
			}

			opts := []agent.Option{}
			if !noSession {
				store, err := session.Open(session.NewID())
				if err != nil {
					return err
				}
				opts = append(opts, agent.WithStore(store))
			}
			a := agent.New(cfg, opts...)

			if len(args) > 0 {
				return runOnce(cmd.Context(), a, strings.Join(args, " "))
			}
			return runREPL(cmd.Context(), a)
		},
	}

	rootCmd.Flags().StringVar(&model, "model", "", "pin both tiers to one model id")
	rootCmd.Flags().StringVar(&provider, "provider", "", `model provider ("openai" or "anthropic")`)
	rootCmd.Flags().BoolVar(&experimental, "experimental", false, "use the experimental model line")
	rootCmd.Flags().BoolVar(&noSession, "no-session", false, "do not persist this session to disk")

	rootCmd.AddCommand(newSessionsCmd())
	return rootCmd
}
