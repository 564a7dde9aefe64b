// SYSPROXY - System Proxy Discovery
//
// Copyright (c) 2016-2026 PaperCut Software http://www.papercut.com/
// Use of this source code is governed by an MIT or GPL Version 2 license.
// See the project's LICENSE file for more information.
//

package report

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/gowebpki/jcs"
)

const (
	// DefaultKeyID is the JWS "kid" used when none is configured.
	DefaultKeyID = "sysproxy-report-key-v1"

	signatureField = "signature"
)

// GenerateKeys creates a new Ed25519 key pair, returned base64 encoded as
// (public, private).
func GenerateKeys() (string, string, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(publicKey), base64.StdEncoding.EncodeToString(privateKey), nil
}

// Sign signs the canonical form of r and returns it with a detached JWS in
// a "signature" member.
func Sign(r Report, privateKeyB64, keyID string) ([]byte, error) {
	payload, err := r.Canonical()
	if err != nil {
		return nil, err
	}
	return SignPayload(payload, privateKeyB64, keyID)
}

// SignPayload signs an arbitrary JSON object. The object must not already
// carry a signature.
func SignPayload(payload []byte, privateKeyB64, keyID string) ([]byte, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object (e.g {...}): %w", err)
	}
	if _, ok := m[signatureField]; ok {
		return nil, fmt.Errorf("payload already contains a '%s' field; maybe it is already signed", signatureField)
	}

	canonicalPayload, err := jcs.Transform(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize payload: %w", err)
	}

	privateKey, err := decodeKey(privateKeyB64, ed25519.PrivateKeySize)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	if keyID == "" {
		keyID = DefaultKeyID
	}
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.EdDSA, Key: ed25519.PrivateKey(privateKey)},
		(&jose.SignerOptions{}).WithHeader("kid", keyID),
	)
	if err != nil {
		return nil, err
	}

	jws, err := signer.Sign(canonicalPayload)
	if err != nil {
		return nil, err
	}
	compact, err := jws.DetachedCompactSerialize()
	if err != nil {
		return nil, err
	}

	m[signatureField] = compact
	signed, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(signed)
}

// Verify checks the detached signature of a signed payload. It returns nil
// only if the signature is present and valid for publicKeyB64.
func Verify(signedPayload []byte, publicKeyB64 string) error {
	publicKey, err := decodeKey(publicKeyB64, ed25519.PublicKeySize)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(signedPayload, &m); err != nil {
		return fmt.Errorf("payload must be a JSON object: %w", err)
	}
	compact, ok := m[signatureField].(string)
	if !ok {
		return fmt.Errorf("invalid signature format: '%s' field missing or not a string", signatureField)
	}
	delete(m, signatureField)

	// Re-canonicalize what was signed.
	unsignedPayload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal unsigned payload: %w", err)
	}
	canonicalPayload, err := jcs.Transform(unsignedPayload)
	if err != nil {
		return fmt.Errorf("failed to canonicalize payload for verification: %w", err)
	}

	object, err := jose.ParseDetached(compact, canonicalPayload, []jose.SignatureAlgorithm{jose.EdDSA})
	if err != nil {
		return fmt.Errorf("failed to parse detached signature: %w", err)
	}
	if _, err := object.Verify(ed25519.PublicKey(publicKey)); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

func decodeKey(b64 string, size int) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	if len(key) != size {
		return nil, fmt.Errorf("expected %d bytes, got %d", size, len(key))
	}
	return key, nil
}
