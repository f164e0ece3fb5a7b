package canister

import (
	"context"
	"fmt"

	"github.com/conn-castle/nftdeploy/internal/candid"
	"github.com/conn-castle/nftdeploy/internal/dfx"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Holding is one registry row: a token and the account holding it.
type Holding struct {
	TokenID uint32
	Holder  string
}

// Registry is a read-only client for a canister exposing getRegistry.
type Registry struct {
	caller   Caller
	name     string
	canister string
	network  string
}

// NewRegistry returns a client for the registry canister id on network. name is a
// display label.
func NewRegistry(caller Caller, name string, canister string, network string) *Registry {
	return &Registry{caller: caller, name: name, canister: canister, network: network}
}

// Name returns the display label.
func (r *Registry) Name() string {
	return r.name
}

// CanisterID returns the registry canister id.
func (r *Registry) CanisterID() string {
	return r.canister
}

// GetRegistry queries getRegistry and returns the rows in canister order.
func (r *Registry) GetRegistry(ctx context.Context) ([]Holding, error) {
	reply, err := r.caller.Call(ctx, dfx.CallOptions{
		Canister: r.canister,
		Method:   "getRegistry",
		Network:  r.network,
		Query:    true,
	})
	if err != nil {
		return nil, fmt.Errorf(messages.CanisterCallFailedFmt, r.canister, "getRegistry", err)
	}
	pairs, err := candid.ParsePairs(reply)
	if err != nil {
		return nil, fmt.Errorf(messages.CanisterDecodeRegistryFmt, r.canister, err)
	}
	holdings := make([]Holding, len(pairs))
	for i, p := range pairs {
		holdings[i] = Holding{TokenID: p.Nat, Holder: p.Text}
	}
	return holdings, nil
}
