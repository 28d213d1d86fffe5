package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/model"
)

// ShareToken is a signed, expiring reference to a stored simulation.
type ShareToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoadShareKey decodes a base64 fernet key. An empty string yields a freshly
// generated key, which invalidates earlier tokens when the process restarts.
func LoadShareKey(encoded string) (*fernet.Key, bool, error) {
	if encoded == "" {
		var k fernet.Key
		if err := k.Generate(); err != nil {
			return nil, false, fmt.Errorf("failed to generate share key: %w", err)
		}
		return &k, true, nil
	}
	k, err := fernet.DecodeKey(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("invalid SHARE_KEY: %w", err)
	}
	return k, false, nil
}

// ShareSimulation issues a token that resolves to the simulation until it expires.
func (s *SimulationService) ShareSimulation(ctx context.Context, id string) (ShareToken, error) {
	if _, err := s.GetSimulation(ctx, id); err != nil {
		return ShareToken{}, err
	}

	// fernet stores whole seconds; expiry is reported from the stored stamp
	signedAt := s.now().Truncate(time.Second)
	tok, err := fernet.EncryptAndSignAtTime([]byte(id), s.opts.ShareKey, signedAt)
	if err != nil {
		return ShareToken{}, fmt.Errorf("failed to sign share token: %w", err)
	}

	return ShareToken{
		Token:     string(tok),
		ExpiresAt: signedAt.Add(s.opts.ShareTokenTTL),
	}, nil
}

// ResolveSharedSimulation returns the simulation a share token points to.
// Tampered and expired tokens yield apperrors.ErrInvalidShareToken. Expiry is
// checked against the wall clock.
func (s *SimulationService) ResolveSharedSimulation(ctx context.Context, token string) (model.Simulation, error) {
	id := fernet.VerifyAndDecrypt([]byte(token), s.opts.ShareTokenTTL, []*fernet.Key{s.opts.ShareKey})
	if id == nil {
		return model.Simulation{}, apperrors.ErrInvalidShareToken
	}
	return s.GetSimulation(ctx, string(id))
}
