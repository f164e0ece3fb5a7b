// Package canister provides typed clients for the NFT and registry canisters, with every
// call going through dfx.
package canister

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/conn-castle/nftdeploy/internal/candid"
	"github.com/conn-castle/nftdeploy/internal/dfx"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Caller issues a dfx canister call. *dfx.Client implements it.
type Caller interface {
	Call(ctx context.Context, opts dfx.CallOptions) ([]byte, error)
}

// AssetRecord is the wire record accepted by addPlaceholder and addAssets.
// Empty Metadata or ThumbnailURL are sent as null.
type AssetRecord struct {
	Name         string
	Metadata     []byte
	PayloadURL   string
	ThumbnailURL string
}

// Candid renders r in the shape the canister expects.
func (r AssetRecord) Candid() candid.Value {
	metadata := candid.None()
	if len(r.Metadata) > 0 {
		metadata = candid.Some(candid.Record(
			candid.Field{Name: "ctype", Value: candid.Text("application/json")},
			candid.Field{Name: "data", Value: candid.Vec(candid.Blob(r.Metadata))},
		))
	}
	return candid.Record(
		candid.Field{Name: "name", Value: candid.Text(r.Name)},
		candid.Field{Name: "payload", Value: candid.Record(
			candid.Field{Name: "ctype", Value: candid.Text("")},
			candid.Field{Name: "data", Value: candid.Vec()},
		)},
		candid.Field{Name: "thumbnail", Value: candid.None()},
		candid.Field{Name: "metadata", Value: metadata},
		candid.Field{Name: "payloadUrl", Value: optText(r.PayloadURL)},
		candid.Field{Name: "thumbnailUrl", Value: optText(r.ThumbnailURL)},
	)
}

func optText(s string) candid.Value {
	if s == "" {
		return candid.None()
	}
	return candid.Some(candid.Text(s))
}

// NFT is a client for the NFT canister.
type NFT struct {
	caller   Caller
	canister string
	network  string
	tempDir  string
	logger   *zap.Logger
}

// NewNFT returns a client for canister on network. Argument files are written to
// tempDir (os.TempDir when empty) and removed after each call.
func NewNFT(caller Caller, canister string, network string, tempDir string, logger *zap.Logger) *NFT {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NFT{caller: caller, canister: canister, network: network, tempDir: tempDir, logger: logger}
}

// Canister returns the canister name the client targets.
func (n *NFT) Canister() string {
	return n.canister
}

// AddPlaceholder calls addPlaceholder(record).
func (n *NFT) AddPlaceholder(ctx context.Context, record AssetRecord) error {
	return n.callWithArgs(ctx, "addPlaceholder", candid.Args(record.Candid()))
}

// AddAssets calls addAssets(vec records).
func (n *NFT) AddAssets(ctx context.Context, records []AssetRecord) error {
	values := make([]candid.Value, len(records))
	for i, r := range records {
		values[i] = r.Candid()
	}
	return n.callWithArgs(ctx, "addAssets", candid.Args(candid.Vec(values...)))
}

// Invoke calls a method that takes no arguments, such as the launch methods.
func (n *NFT) Invoke(ctx context.Context, method string) error {
	reply, err := n.caller.Call(ctx, dfx.CallOptions{Canister: n.canister, Method: method, Network: n.network})
	if err != nil {
		return fmt.Errorf(messages.CanisterCallFailedFmt, n.canister, method, err)
	}
	n.logger.Debug("canister reply", zap.String("method", method), zap.ByteString("reply", reply))
	return nil
}

func (n *NFT) callWithArgs(ctx context.Context, method string, args string) error {
	file, err := os.CreateTemp(n.tempDir, method+"-*.did")
	if err != nil {
		return fmt.Errorf(messages.CandidWriteArgsFmt, method, err)
	}
	path := file.Name()
	defer func() {
		_ = os.Remove(path)
	}()
	if _, err := file.WriteString(args); err != nil {
		_ = file.Close()
		return fmt.Errorf(messages.CandidWriteArgsFmt, method, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf(messages.CandidWriteArgsFmt, method, err)
	}

	n.logger.Debug("canister call", zap.String("method", method), zap.String("args_file", filepath.Base(path)), zap.Int("bytes", len(args)))
	reply, err := n.caller.Call(ctx, dfx.CallOptions{
		Canister:     n.canister,
		Method:       method,
		Network:      n.network,
		ArgumentFile: path,
	})
	if err != nil {
		return fmt.Errorf(messages.CanisterCallFailedFmt, n.canister, method, err)
	}
	n.logger.Debug("canister reply", zap.String("method", method), zap.ByteString("reply", reply))
	return nil
}
