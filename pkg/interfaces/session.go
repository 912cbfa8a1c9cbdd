package interfaces

import "context"

// CredentialSource supplies the bearer credential attached to every API
// request. Token acquisition and refresh are owned by the host application's
// auth layer; the sitebuilder runtime only reads the current value.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
}

// Identity captures the authenticated principal driving a session. TenantID is
// the tenant reference used to resolve the module experience descriptor; an
// empty TenantID means "no tenant context" and suppresses descriptor loads.
type Identity struct {
	UserID   string
	TenantID string
}

// IdentitySource exposes the current authenticated identity. Implementations
// typically wrap the host's session store.
type IdentitySource interface {
	CurrentIdentity(ctx context.Context) (Identity, bool)
}

// StaticToken adapts a fixed credential string into a CredentialSource. Useful
// for tests and CLI tooling.
type StaticToken string

// Token implements CredentialSource.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}
