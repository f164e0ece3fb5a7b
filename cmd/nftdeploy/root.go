package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/config"
	"github.com/conn-castle/nftdeploy/internal/dfx"
	"github.com/conn-castle/nftdeploy/internal/logging"
	"github.com/conn-castle/nftdeploy/internal/messages"
	projectroot "github.com/conn-castle/nftdeploy/internal/root"
	"github.com/conn-castle/nftdeploy/internal/terminal"
)

const (
	flagConfig     = "config"
	flagProjectDir = "project-dir"
	flagVerbose    = "verbose"
	flagNoColor    = "no-color"
)

var dfxSystem dfx.System = dfx.RealSystem{}

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	projectDir string
	verbose    bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor || !terminal.IsTerminalWriter(cmd.OutOrStdout()) {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, flagConfig, "", messages.RootFlagConfig)
	cmd.PersistentFlags().StringVar(&flags.projectDir, flagProjectDir, "", messages.RootFlagProjectDir)
	cmd.PersistentFlags().BoolVarP(&flags.verbose, flagVerbose, "v", false, messages.RootFlagVerbose)
	cmd.PersistentFlags().BoolVar(&flags.noColor, flagNoColor, false, messages.RootFlagNoColor)

	cmd.AddCommand(newDeployCmd(flags), newHoldersCmd(flags))
	return cmd
}

// session is the resolved project context of one command.
type session struct {
	root   string
	cfg    *config.Config
	logger *zap.Logger
}

// load resolves the project root, reads the config and builds the logger.
func (f *rootFlags) load(cmd *cobra.Command) (*session, error) {
	root := f.projectDir
	if root == "" {
		wd, err := getwd()
		if err != nil {
			return nil, fmt.Errorf(messages.GetwdFailedFmt, err)
		}
		root, err = projectroot.ResolveProjectRoot(wd)
		if err != nil {
			return nil, err
		}
	}

	path := f.configPath
	required := path != ""
	if path == "" {
		path = config.DefaultPath(root)
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	return &session{
		root:   root,
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), f.verbose),
	}, nil
}

// dfxClient returns a dfx client running in the project root with the command's streams.
func (s *session) dfxClient(cmd *cobra.Command) (*dfx.Client, error) {
	return dfx.New(dfxSystem, dfx.ResolveBinary(s.cfg.DFX.Binary), dfx.Options{
		Dir:    s.root,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: s.logger,
	})
}
