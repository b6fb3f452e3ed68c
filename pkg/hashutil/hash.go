/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package hashutil verifies the sha256 checksums pinned for plugin scripts.
package hashutil

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	errEmptyChecksum       = errors.New("empty checksum")
	errUnsupportedEncoding = errors.New("checksum is neither hex nor base64")
	errDigestLength        = errors.New("checksum is not a sha256 digest")
	// ErrChecksumMismatch is returned when content does not hash to the pinned checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// base64 alphabets a pinned checksum may use, tried in order after hex.
var base64Variants = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeSHA256 decodes a hex or base64 checksum into its raw 32 byte digest.
func DecodeSHA256(s string) ([]byte, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "sha256:"))
	if clean == "" {
		return nil, errEmptyChecksum
	}

	if decoded, err := hex.DecodeString(clean); err == nil && len(decoded) == sha256.Size {
		return decoded, nil
	}

	for _, enc := range base64Variants {
		if decoded, err := enc.DecodeString(clean); err == nil {
			if len(decoded) != sha256.Size {
				return nil, fmt.Errorf("%w: %d bytes", errDigestLength, len(decoded))
			}

			return decoded, nil
		}
	}

	if _, err := hex.DecodeString(clean); err == nil {
		return nil, fmt.Errorf("%w: %d hex digits", errDigestLength, len(clean))
	}

	return nil, fmt.Errorf("%w: %q", errUnsupportedEncoding, s)
}

// CanonicalSHA256 re-encodes a checksum as lowercase hex.
func CanonicalSHA256(s string) (string, error) {
	decoded, err := DecodeSHA256(s)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(decoded), nil
}

// Verify checks that data hashes to expected.
func Verify(expected string, data []byte) error {
	want, err := DecodeSHA256(expected)
	if err != nil {
		return err
	}

	got := sha256.Sum256(data)

	if subtle.ConstantTimeCompare(want, got[:]) != 1 {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksumMismatch, hex.EncodeToString(want), hex.EncodeToString(got[:]))
	}

	return nil
}
