package ports

import "context"

// SecretStore keeps credentials outside the profile file. Keys are secret
// refs such as "guardcore://main/token"; a missing key yields an error that
// wraps domain.ErrSecretNotFound.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
