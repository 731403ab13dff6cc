package application

import (
	"context"
	"fmt"

	"github.com/jmanzanog/folio/internal/domain"
)

// AdminSession persists the opaque admin marker set after a successful admin
// login. It is not a credential: nothing here verifies it.
type AdminSession struct {
	kv domain.KeyValueStore
}

func NewAdminSession(kv domain.KeyValueStore) *AdminSession {
	return &AdminSession{kv: kv}
}

func (s *AdminSession) SetMarker(ctx context.Context, marker string) error {
	if marker == "" {
		return fmt.Errorf("%w: empty admin marker", domain.ErrInvalidInput)
	}
	if err := s.kv.Set(ctx, KeyAdminMarker, []byte(marker)); err != nil {
		return fmt.Errorf("failed to store admin marker: %w", err)
	}
	return nil
}

func (s *AdminSession) Marker(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyAdminMarker)
	if err != nil {
		return "", false, fmt.Errorf("failed to read admin marker: %w", err)
	}
	if !ok || len(raw) == 0 {
		return "", false, nil
	}
	return string(raw), true, nil
}

func (s *AdminSession) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyAdminMarker); err != nil {
		return fmt.Errorf("failed to clear admin marker: %w", err)
	}
	return nil
}
