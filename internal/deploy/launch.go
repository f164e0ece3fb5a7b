package deploy

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Lifecycle methods, in the order Launch calls them.
const (
	MethodInitCap              = "initCap"
	MethodInitMint             = "initMint"
	MethodShuffleTokensForSale = "shuffleTokensForSale"
	MethodAirdropTokens        = "airdropTokens"
	MethodEnableSale           = "enableSale"
)

type launchStep struct {
	method  string
	message string
}

var launchSteps = []launchStep{
	{MethodInitMint, messages.LaunchInitMint},
	{MethodShuffleTokensForSale, messages.LaunchShuffle},
	{MethodAirdropTokens, messages.LaunchAirdrop},
	{MethodEnableSale, messages.LaunchEnableSale},
}

// Launch activates the installed canister. initCap only runs for the production
// canister on ic. The first failing call stops the sequence; earlier calls are not
// undone.
func (d *Deployer) Launch(ctx context.Context) error {
	_, _ = color.New(color.FgGreen).Fprintln(d.out, messages.LaunchStarting)

	if d.run.InitCapEnabled() {
		if err := d.invoke(ctx, launchStep{MethodInitCap, messages.LaunchInitCap}); err != nil {
			return err
		}
	} else {
		_, _ = color.New(color.FgYellow).Fprintln(d.out, messages.LaunchSkipCap)
	}

	for _, step := range launchSteps {
		if err := d.invoke(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deployer) invoke(ctx context.Context, step launchStep) error {
	_, _ = fmt.Fprintln(d.out, step.message)
	if err := d.actor.Invoke(ctx, step.method); err != nil {
		return fmt.Errorf(messages.LaunchCallFailedFmt, step.method, err)
	}
	d.logger.Debug("launch step done", zap.String("method", step.method))
	return nil
}
