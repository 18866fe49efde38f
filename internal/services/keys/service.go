package keys

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"sealbox/internal/crypto"
	"sealbox/internal/domain"
	"sealbox/internal/serial"
	"sealbox/internal/util/memzero"
)

// DefaultIterations is the PBKDF2 iteration count recorded for new
// passphrase-derived keys.
const DefaultIterations = 500000

// Service implements domain.KeyService over an account-data store.
type Service struct {
	store      domain.AccountDataStore
	runner     *serial.Runner
	iterations int
}

// New returns a key service. A nil runner executes crypto work inline;
// iterations <= 0 selects DefaultIterations.
func New(store domain.AccountDataStore, runner *serial.Runner, iterations int) *Service {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Service{store: store, runner: runner, iterations: iterations}
}

func (s *Service) run(ctx context.Context, fn func() error) error {
	if s.runner == nil {
		return fn()
	}
	return s.runner.Do(ctx, fn)
}

// CreateKey generates or stretches a 32-byte private key, persists the
// descriptor under the key's account-data type and returns the key material
// with its recovery encoding.
//
// No partial state survives failure: if the descriptor write fails the
// generated key material is wiped and discarded.
func (s *Service) CreateKey(ctx context.Context, req domain.CreateKeyRequest) (domain.KeyCreation, error) {
	keyID := req.KeyID
	if keyID == "" {
		keyID = uuid.NewString()
	}

	var (
		priv   []byte
		params *domain.PassphraseParams
	)
	if req.Passphrase != "" {
		salt, err := crypto.NewSalt()
		if err != nil {
			return domain.KeyCreation{}, err
		}
		if err := s.run(ctx, func() error {
			priv = crypto.StretchPassphrase(req.Passphrase, salt, s.iterations, domain.PrivateKeyLength)
			return nil
		}); err != nil {
			return domain.KeyCreation{}, err
		}
		params = &domain.PassphraseParams{
			Algorithm:  domain.PassphraseAlgPBKDF2,
			Salt:       salt,
			Iterations: s.iterations,
		}
	} else {
		priv = make([]byte, domain.PrivateKeyLength)
		if _, err := rand.Read(priv); err != nil {
			return domain.KeyCreation{}, err
		}
	}

	desc := domain.KeyDescriptor{
		ID:         keyID,
		Name:       req.Name,
		Algorithm:  domain.AlgorithmAESHMACSHA2,
		Passphrase: params,
	}
	if err := s.store.PutAccountData(ctx, domain.KeyDescriptorTypePrefix+keyID, desc); err != nil {
		memzero.Zero(priv)
		return domain.KeyCreation{}, fmt.Errorf("persisting key descriptor: %w", err)
	}

	return domain.KeyCreation{
		KeyID:       keyID,
		Descriptor:  desc,
		PrivateKey:  priv,
		RecoveryKey: crypto.EncodeRecoveryKey(priv),
	}, nil
}

// SetDefaultKey points the default-key entry at keyID.
func (s *Service) SetDefaultKey(ctx context.Context, keyID string) error {
	return s.store.PutAccountData(ctx, domain.DefaultKeyType, domain.DefaultKeyPointer{Key: keyID})
}

// DefaultKeyID reads the default-key pointer.
func (s *Service) DefaultKeyID(ctx context.Context) (string, bool, error) {
	raw, err := s.store.GetAccountData(ctx, domain.DefaultKeyType)
	if err != nil {
		return "", false, err
	}
	if raw == nil {
		return "", false, nil
	}
	var ptr domain.DefaultKeyPointer
	if err := json.Unmarshal(raw, &ptr); err != nil {
		return "", false, fmt.Errorf("default key entry: %w", err)
	}
	if ptr.Key == "" {
		return "", false, nil
	}
	return ptr.Key, true, nil
}

// Key reads and strictly parses one descriptor.
func (s *Service) Key(ctx context.Context, keyID string) (domain.KeyDescriptor, bool, error) {
	raw, err := s.store.GetAccountData(ctx, domain.KeyDescriptorTypePrefix+keyID)
	if err != nil {
		return domain.KeyDescriptor{}, false, err
	}
	if raw == nil {
		return domain.KeyDescriptor{}, false, nil
	}
	desc, err := domain.ParseKeyDescriptor(keyID, raw)
	if err != nil {
		return domain.KeyDescriptor{}, false, err
	}
	return desc, true, nil
}

// DefaultKey resolves the default pointer to its descriptor, propagating
// absence of either the pointer or the descriptor.
func (s *Service) DefaultKey(ctx context.Context) (domain.KeyDescriptor, bool, error) {
	id, ok, err := s.DefaultKeyID(ctx)
	if err != nil || !ok {
		return domain.KeyDescriptor{}, false, err
	}
	return s.Key(ctx, id)
}

// DeriveFromPassphrase re-derives the private key for a passphrase-created
// descriptor using its recorded salt and iteration count.
func (s *Service) DeriveFromPassphrase(ctx context.Context, desc domain.KeyDescriptor, passphrase string) ([]byte, error) {
	p := desc.Passphrase
	if p == nil {
		return nil, fmt.Errorf("key %q was not created from a passphrase", desc.ID)
	}
	if p.Algorithm != domain.PassphraseAlgPBKDF2 {
		return nil, domain.Errf(domain.CodeUnsupportedAlgorithm, "unknown passphrase algorithm %q", p.Algorithm)
	}
	var priv []byte
	if err := s.run(ctx, func() error {
		priv = crypto.StretchPassphrase(passphrase, p.Salt, p.Iterations, domain.PrivateKeyLength)
		return nil
	}); err != nil {
		return nil, err
	}
	return priv, nil
}

var _ domain.KeyService = (*Service)(nil)
