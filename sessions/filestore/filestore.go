package filestore

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
	"github.com/jrsteele09/go-talent-client/token"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

var _ sessions.Store = (*Store)(nil)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32
)

// sealedMagic prefixes encrypted session files
var sealedMagic = []byte("TLNT1")

// Store persists the credential pair in a single file so a signed-in session
// survives process restarts. Writes go to a temporary file that is renamed
// over the target, so readers see either the old or the new pair.
type Store struct {
	path       string
	passphrase []byte

	keyLock sync.Mutex
	keySalt []byte
	key     *[keySize]byte
}

type Option func(*Store)

// WithPassphrase encrypts the file at rest with a key derived from passphrase
func WithPassphrase(passphrase string) Option {
	return func(s *Store) {
		if passphrase != "" {
			s.passphrase = []byte(passphrase)
		}
	}
}

func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("session file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating session folder: %w", err)
	}
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context) (*token.Pair, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "reading %s: %s", s.path, err)
	}

	if bytes.HasPrefix(data, sealedMagic) {
		if data, err = s.open(data[len(sealedMagic):]); err != nil {
			return nil, err
		}
	} else if s.passphrase != nil {
		return nil, apperrors.Wrapf(apperrors.ErrDecryptFailed, "session file is not encrypted")
	}

	return sessions.Unmarshal(data)
}

func (s *Store) Set(_ context.Context, pair token.Pair) error {
	data, err := sessions.Marshal(pair)
	if err != nil {
		return err
	}
	if s.passphrase != nil {
		sealed, err := s.seal(data)
		if err != nil {
			return err
		}
		data = append(append([]byte{}, sealedMagic...), sealed...)
	}
	return s.writeAtomic(data)
}

func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "removing %s: %s", s.path, err)
	}
	return nil
}

func (s *Store) writeAtomic(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "creating temp file: %s", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "writing session: %s", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "syncing session: %s", err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "closing session: %s", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperrors.Wrapf(apperrors.ErrStoreOperationFailed, "replacing session: %s", err)
	}
	return nil
}

// seal output: salt | nonce | secretbox(data)
func (s *Store) seal(data []byte) ([]byte, error) {
	salt, key, err := s.currentKey()
	if err != nil {
		return nil, err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	out := make([]byte, 0, saltSize+nonceSize+len(data)+secretbox.Overhead)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, data, &nonce, key), nil
}

func (s *Store) open(sealed []byte) ([]byte, error) {
	if s.passphrase == nil {
		return nil, apperrors.Wrapf(apperrors.ErrDecryptFailed, "session file is encrypted but no passphrase is configured")
	}
	if len(sealed) < saltSize+nonceSize+secretbox.Overhead {
		return nil, apperrors.ErrDecryptFailed
	}
	salt := sealed[:saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[saltSize:saltSize+nonceSize])

	data, ok := secretbox.Open(nil, sealed[saltSize+nonceSize:], &nonce, s.keyFor(salt))
	if !ok {
		return nil, apperrors.ErrDecryptFailed
	}
	return data, nil
}

// currentKey returns the cached salt and key, generating a salt on first use
func (s *Store) currentKey() ([]byte, *[keySize]byte, error) {
	s.keyLock.Lock()
	salt := s.keySalt
	s.keyLock.Unlock()

	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
		}
	}
	return salt, s.keyFor(salt), nil
}

// keyFor derives the key for salt. The last derivation is cached since the
// store is read before every request.
func (s *Store) keyFor(salt []byte) *[keySize]byte {
	s.keyLock.Lock()
	defer s.keyLock.Unlock()

	if s.key != nil && bytes.Equal(s.keySalt, salt) {
		return s.key
	}

	var key [keySize]byte
	copy(key[:], argon2.IDKey(s.passphrase, salt, 1, 64*1024, 4, keySize))
	s.keySalt = append([]byte{}, salt...)
	s.key = &key
	return s.key
}
