package download

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var hexDigestRE = regexp.MustCompile(`(?i)\b[a-f0-9]{64}\b`)

// ResolveExpectedChecksum fetches a checksum document and extracts the
// sha256 digest that applies to fileName. A nil client gets a default with
// a short timeout.
func ResolveExpectedChecksum(ctx context.Context, checksumURL, fileName string, client *http.Client) (string, error) {
	if strings.TrimSpace(checksumURL) == "" {
		return "", errors.New("checksum URL is empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checksumURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checksum endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return ParseChecksum(body, fileName)
}

// ParseChecksum extracts a sha256 digest from typical checksum documents.
// Git LFS pointer files win (the hub serves those under raw/ for large
// weights), then classic "<hex>  <file>" lines naming fileName, then the
// first 64-hex token found anywhere.
func ParseChecksum(content []byte, fileName string) (string, error) {
	var fromPointer, fromNamedLine, fromAnyLine string

	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()

		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "oid sha256:"); ok && fromPointer == "" {
			fromPointer = hexDigest(rest)
		}
		if fromNamedLine == "" && fileName != "" && strings.Contains(line, fileName) {
			fromNamedLine = hexDigest(line)
		}
		if fromAnyLine == "" {
			fromAnyLine = hexDigest(line)
		}
	}

	for _, digest := range []string{fromPointer, fromNamedLine, fromAnyLine} {
		if digest != "" {
			return digest, nil
		}
	}

	return "", errors.New("no sha256 digest found in checksum document")
}

// VerifyFileChecksum hashes the file at path and compares it against
// expectedSHA256. An empty expectation verifies nothing.
func VerifyFileChecksum(path, expectedSHA256 string) error {
	expected := strings.ToLower(strings.TrimSpace(expectedSHA256))
	if expected == "" {
		return nil
	}

	actual, err := fileSHA256(path)
	if err != nil {
		return err
	}

	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", filepath.Base(path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hexDigest(s string) string {
	return strings.ToLower(hexDigestRE.FindString(s))
}
