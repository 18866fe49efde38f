package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sealbox/internal/domain"
	"sealbox/internal/protocol/ssss"
	"sealbox/internal/serial"
)

// Service implements domain.SecretService.
type Service struct {
	store  domain.AccountDataStore
	keys   domain.KeyService
	runner *serial.Runner
}

// New returns a secret service. A nil runner executes crypto work inline.
func New(store domain.AccountDataStore, keys domain.KeyService, runner *serial.Runner) *Service {
	return &Service{store: store, keys: keys, runner: runner}
}

func (s *Service) run(ctx context.Context, fn func() error) error {
	if s.runner == nil {
		return fn()
	}
	return s.runner.Do(ctx, fn)
}

// entry reads and parses the secret's account-data entry, or reports the
// secret unknown.
func (s *Service) entry(ctx context.Context, secretID string) (domain.SecretEntry, error) {
	raw, err := s.store.GetAccountData(ctx, secretID)
	if err != nil {
		return domain.SecretEntry{}, err
	}
	if raw == nil {
		return domain.SecretEntry{}, domain.ErrUnknownSecret
	}
	var entry domain.SecretEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.SecretEntry{}, fmt.Errorf("secret entry %q: %w", secretID, err)
	}
	return entry, nil
}

// KeysForSecret maps each key id protecting secretID to its descriptor.
// Key ids with no matching descriptor are silently omitted, matching the
// permissive lookup clients rely on.
func (s *Service) KeysForSecret(ctx context.Context, secretID string) (map[string]domain.KeyDescriptor, error) {
	entry, err := s.entry(ctx, secretID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.KeyDescriptor)
	for keyID := range entry.Encrypted {
		desc, ok, err := s.keys.Key(ctx, keyID)
		if err != nil {
			return nil, err
		}
		if ok {
			out[keyID] = desc
		}
	}
	return out, nil
}

// Secret validates and decrypts one secret. A blank keyID resolves through
// the default-key pointer. Each stage short-circuits with its own taxonomy
// code, and no decryption is attempted until the payload, descriptor and
// algorithm all check out.
func (s *Service) Secret(ctx context.Context, secretID, keyID string, privateKey []byte) (string, error) {
	entry, err := s.entry(ctx, secretID)
	if err != nil {
		return "", err
	}

	if keyID == "" {
		id, ok, err := s.keys.DefaultKeyID(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", domain.ErrUnknownKey
		}
		keyID = id
	}
	desc, ok, err := s.keys.Key(ctx, keyID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.Errf(domain.CodeUnknownKey, "no descriptor for key %q", keyID)
	}

	if entry.Encrypted == nil {
		return "", domain.ErrSecretNotEncrypted
	}
	payload, ok := entry.Encrypted[keyID]
	if !ok {
		return "", domain.Errf(domain.CodeSecretNotEncryptedWithKey, "secret %q is not encrypted with key %q", secretID, keyID)
	}
	if desc.Algorithm != domain.AlgorithmAESHMACSHA2 {
		return "", domain.Errf(domain.CodeUnsupportedAlgorithm, "key %q uses %q", keyID, desc.Algorithm)
	}

	var plaintext string
	if err := s.run(ctx, func() error {
		pt, err := ssss.Decrypt(privateKey, secretID, payload)
		if err != nil {
			return err
		}
		plaintext = pt
		return nil
	}); err != nil {
		return "", err
	}
	return plaintext, nil
}

// StoreSecret encrypts plaintext under each supplied key and merges the
// payloads into the secret's encrypted map, preserving entries for keys not
// being updated, then persists the merged entry in a single write.
//
// The read-modify-merge-write is racy against concurrent writers of the same
// secret: the store is last-write-wins per type, and no transaction layer is
// added here.
func (s *Service) StoreSecret(ctx context.Context, secretID, plaintext string, keys map[string][]byte) error {
	if len(keys) == 0 {
		return domain.ErrUnknownKey
	}
	for keyID := range keys {
		desc, ok, err := s.keys.Key(ctx, keyID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.Errf(domain.CodeUnknownKey, "no descriptor for key %q", keyID)
		}
		if desc.Algorithm != domain.AlgorithmAESHMACSHA2 {
			return domain.Errf(domain.CodeUnsupportedAlgorithm, "key %q uses %q", keyID, desc.Algorithm)
		}
	}

	entry, err := s.entry(ctx, secretID)
	if err != nil && !errors.Is(err, domain.ErrUnknownSecret) {
		return err
	}
	if entry.Encrypted == nil {
		entry.Encrypted = make(map[string]domain.EncryptedPayload)
	}

	for keyID, privateKey := range keys {
		var payload domain.EncryptedPayload
		if err := s.run(ctx, func() error {
			p, err := ssss.Encrypt(privateKey, secretID, plaintext)
			if err != nil {
				return err
			}
			payload = p
			return nil
		}); err != nil {
			return err
		}
		entry.Encrypted[keyID] = payload
	}

	if err := s.store.PutAccountData(ctx, secretID, entry); err != nil {
		return fmt.Errorf("persisting secret %q: %w", secretID, err)
	}
	return nil
}

var _ domain.SecretService = (*Service)(nil)
