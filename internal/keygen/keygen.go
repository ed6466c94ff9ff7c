// Package keygen generates RSA key pairs in the PEM layout Snowflake and
// similar services expect: a PKCS#8 private key and a PKIX public key.
package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const keyBits = 2048

// Pair reports where the generated keys were written.
type Pair struct {
	PrivatePath string
	PublicPath  string
}

// Generate creates a key pair under dir using name as the file stem.
// The directory is created when missing. Existing files are replaced.
func Generate(dir, name string) (Pair, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Pair{}, fmt.Errorf("create key directory: %w", err)
	}

	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return Pair{}, fmt.Errorf("generate key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return Pair{}, fmt.Errorf("encode private key: %w", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return Pair{}, fmt.Errorf("encode public key: %w", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	pair := Pair{
		PrivatePath: filepath.Join(dir, name+".p8"),
		PublicPath:  filepath.Join(dir, name+".pub"),
	}

	if err := os.WriteFile(pair.PrivatePath, privPEM, 0o600); err != nil {
		return Pair{}, fmt.Errorf("write private key: %w", err)
	}
	if err := os.WriteFile(pair.PublicPath, pubPEM, 0o644); err != nil {
		return Pair{}, fmt.Errorf("write public key: %w", err)
	}
	return pair, nil
}

// StripPEM removes the BEGIN/END armor and all newlines from a PEM public
// key, leaving the bare base64 body for pasting into SQL statements.
func StripPEM(pemText string) string {
	var parts []string
	for _, line := range strings.Split(pemText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-----") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "")
}
