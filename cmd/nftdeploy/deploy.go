package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nftdeploy/internal/canister"
	"github.com/conn-castle/nftdeploy/internal/config"
	"github.com/conn-castle/nftdeploy/internal/deploy"
	"github.com/conn-castle/nftdeploy/internal/messages"
	"github.com/conn-castle/nftdeploy/internal/prompt"
	"github.com/conn-castle/nftdeploy/internal/runlock"
)

var newConfirmer = func() prompt.Confirmer { return prompt.HuhConfirmer{} }

func newDeployCmd(flags *rootFlags) *cobra.Command {
	var opts config.RunOptions

	cmd := &cobra.Command{
		Use:   messages.DeployUse,
		Short: messages.DeployShort,
		Long:  messages.DeployLong,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf(messages.DeployTooManyArgsFmt, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.logger.Sync()
			}()

			runOpts := opts
			if len(args) == 1 {
				runOpts.Network = args[0]
			}
			runOpts.ProjectRoot = s.root
			run, err := config.NewRun(s.cfg, runOpts)
			if err != nil {
				return err
			}
			return runlock.With(s.root, func() error {
				return runDeploy(cmd, s, run)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Mode, "mode", "", messages.DeployFlagMode)
	cmd.Flags().StringVar(&opts.WithCycles, "with-cycles", "", messages.DeployFlagWithCycles)
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, messages.DeployFlagYes)
	cmd.Flags().BoolVar(&opts.SkipBuild, "skip-build", false, messages.DeployFlagSkipBuild)
	cmd.Flags().BoolVar(&opts.SkipLaunch, "skip-launch", false, messages.DeployFlagSkipLaunch)
	return cmd
}

func runDeploy(cmd *cobra.Command, s *session, run config.Run) error {
	ctx := cmd.Context()
	client, err := s.dfxClient(cmd)
	if err != nil {
		return err
	}
	identity, err := client.LoadIdentity(ctx)
	if err != nil {
		return fmt.Errorf(messages.DeployIdentityFailedFmt, err)
	}
	run = run.WithIdentity(identity)
	signed := client.WithIdentity(identity.Name)

	actor := canister.NewNFT(signed, run.Canister, run.DFXNetwork, "", s.logger)
	d := deploy.New(run, signed, actor, deploy.Options{
		Out:       cmd.OutOrStdout(),
		Logger:    s.logger,
		Confirmer: newConfirmer(),
	})
	err = d.Deploy(ctx)
	if errors.Is(err, deploy.ErrReinstallDeclined) || errors.Is(err, prompt.ErrAborted) {
		_, _ = color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), err)
		return &SilentExitError{Code: 1}
	}
	return err
}
