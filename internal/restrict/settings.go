package restrict

import (
	"context"
	"fmt"
	"log/slog"
)

// OptionStore is the network-wide option store.
type OptionStore interface {
	GetNetworkOption(ctx context.Context, key string) (string, bool, error)
	SetNetworkOption(ctx context.Context, key, value string) error
}

// NetworkSettings is the network default for newly registered users.
type NetworkSettings struct {
	store OptionStore
}

func NewNetworkSettings(store OptionStore) *NetworkSettings {
	return &NetworkSettings{store: store}
}

// Raw returns the stored value, "" when unset.
func (s *NetworkSettings) Raw(ctx context.Context) (string, error) {
	v, _, err := s.store.GetNetworkOption(ctx, OptionDefault)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", OptionDefault, err)
	}
	return v, nil
}

// RestrictNewUsers reports whether the stored value is DefaultRestrict.
func (s *NetworkSettings) RestrictNewUsers(ctx context.Context) (bool, error) {
	v, err := s.Raw(ctx)
	if err != nil {
		return false, err
	}
	return v == DefaultRestrict, nil
}

// Set stores value without canonicalisation.
func (s *NetworkSettings) Set(ctx context.Context, value string) error {
	if err := s.store.SetNetworkOption(ctx, OptionDefault, value); err != nil {
		return fmt.Errorf("write %s: %w", OptionDefault, err)
	}
	slog.InfoContext(ctx, "network default saved", "value", value)
	return nil
}
