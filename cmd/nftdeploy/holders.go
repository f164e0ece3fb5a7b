package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/nftdeploy/internal/canister"
	"github.com/conn-castle/nftdeploy/internal/config"
	"github.com/conn-castle/nftdeploy/internal/holders"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

const flagIntersection = "intersection"

func newHoldersCmd(flags *rootFlags) *cobra.Command {
	var (
		intersection string
		outDir       string
		network      string
		parallel     bool
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   messages.HoldersUse,
		Short: messages.HoldersShort,
		Long:  messages.HoldersLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.logger.Sync()
			}()

			cfg := s.cfg.Holders
			name := cfg.Intersection
			if cmd.Flags().Changed(flagIntersection) {
				name = intersection
			}
			strategy, err := holders.ParseStrategy(name)
			if err != nil {
				return err
			}
			if network == "" {
				network = cfg.Network
			}
			if outDir == "" {
				outDir = cfg.OutDir
			}
			dir, err := config.ResolvePath(s.root, outDir)
			if err != nil {
				return err
			}

			client, err := s.dfxClient(cmd)
			if err != nil {
				return err
			}
			sources := make([]holders.Source, 0, len(cfg.Registries))
			for _, r := range cfg.Registries {
				sources = append(sources, canister.NewRegistry(client, r.Name, r.CanisterID, network))
			}
			agg, err := holders.New(sources, holders.Options{
				Strategy: strategy,
				Parallel: parallel,
				DryRun:   dryRun,
				OutDir:   dir,
				Outputs: holders.Outputs{
					Trilogy: cfg.Outputs.Trilogy,
					First:   cfg.Outputs.First,
					Union:   cfg.Outputs.Union,
				},
				Out:    cmd.OutOrStdout(),
				Logger: s.logger,
			})
			if err != nil {
				return err
			}
			_, err = agg.Run(cmd.Context())
			return err
		},
	}
	cmd.Flags().StringVar(&intersection, flagIntersection, config.IntersectionMin, messages.HoldersFlagIntersection)
	cmd.Flags().BoolVar(&parallel, "parallel", false, messages.HoldersFlagParallel)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.HoldersFlagDryRun)
	cmd.Flags().StringVar(&outDir, "out-dir", "", messages.HoldersFlagOutDir)
	cmd.Flags().StringVar(&network, "network", "", messages.HoldersFlagNetwork)
	return cmd
}
