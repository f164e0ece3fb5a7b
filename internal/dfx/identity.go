package dfx

import (
	"context"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Identity is the dfx identity a run signs with.
type Identity struct {
	Name      string
	Principal string
}

// LoadIdentity resolves the active dfx identity. The exported key is checked to be a
// PEM private key and then dropped; dfx keeps signing on our behalf.
func (c *Client) LoadIdentity(ctx context.Context) (Identity, error) {
	out, err := c.output(ctx, []string{"identity", "whoami"})
	if err != nil {
		return Identity{}, err
	}
	name := strings.TrimSpace(string(out))
	if name == "" {
		return Identity{}, errors.New(messages.DFXIdentityEmpty)
	}

	key, err := c.output(ctx, []string{"identity", "export", name})
	if err != nil {
		return Identity{}, fmt.Errorf(messages.DFXIdentityExportFmt, name, err)
	}
	if !isPrivateKeyPEM(key) {
		return Identity{}, fmt.Errorf(messages.DFXIdentityNotPEMFmt, name)
	}

	out, err = c.WithIdentity(name).output(ctx, []string{"identity", "get-principal"})
	if err != nil {
		return Identity{}, fmt.Errorf(messages.DFXIdentityPrincipalFmt, name, err)
	}
	principal := strings.TrimSpace(string(out))
	if principal == "" {
		return Identity{}, fmt.Errorf(messages.DFXIdentityPrincipalFmt, name, fmt.Errorf(messages.DFXEmptyOutputFmt, "identity get-principal"))
	}
	return Identity{Name: name, Principal: principal}, nil
}

func isPrivateKeyPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil && strings.HasSuffix(block.Type, "PRIVATE KEY")
}
