package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Options configures a single file download.
type Options struct {
	URL            string
	Destination    string
	ExpectedSHA256 string
	ChecksumURL    string
	Retries        int
	NoProgress     bool
	HTTPClient     *http.Client
	Logger         *zap.Logger
}

// DownloadFile fetches opts.URL into opts.Destination. The body lands in a
// .part file next to the destination and is renamed into place only after
// the sha256 digest checks out, so an interrupted or corrupt download never
// leaves a broken file under the final name.
func DownloadFile(ctx context.Context, opts Options) error {
	if opts.URL == "" {
		return errors.New("missing download URL")
	}
	if opts.Destination == "" {
		return errors.New("missing destination path")
	}

	retries := opts.Retries
	if retries <= 0 {
		retries = 3
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Minute}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	expected := strings.ToLower(strings.TrimSpace(opts.ExpectedSHA256))
	if expected == "" && opts.ChecksumURL != "" {
		sum, err := ResolveExpectedChecksum(ctx, opts.ChecksumURL, filepath.Base(opts.Destination), client)
		if err != nil {
			return fmt.Errorf("resolve checksum: %w", err)
		}
		expected = sum
	}

	if err := os.MkdirAll(filepath.Dir(opts.Destination), 0o755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			log.Warn("retrying download",
				zap.String("url", opts.URL),
				zap.Int("attempt", attempt+1),
				zap.Int("max", retries))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt+1) * 300 * time.Millisecond):
			}
		}

		if lastErr = fetchToTemp(ctx, client, opts, expected); lastErr == nil {
			log.Debug("download complete", zap.String("destination", opts.Destination))
			return nil
		}
	}
	return lastErr
}

func fetchToTemp(ctx context.Context, client *http.Client, opts Options, expected string) (err error) {
	partPath := opts.Destination + ".part"
	_ = os.Remove(partPath)

	part, createErr := os.Create(partPath)
	if createErr != nil {
		return fmt.Errorf("create partial file: %w", createErr)
	}
	defer func() {
		_ = part.Close()
		if err != nil {
			_ = os.Remove(partPath)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "taltext/2")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	hash := sha256.New()
	sinks := []io.Writer{part, hash}
	if bar := newDownloadBar(opts.NoProgress, resp.ContentLength); bar != nil {
		sinks = append(sinks, bar)
		defer func() { _ = bar.Finish() }()
	}

	if _, err = io.Copy(io.MultiWriter(sinks...), resp.Body); err != nil {
		return fmt.Errorf("copy body: %w", err)
	}
	if err = part.Sync(); err != nil {
		return fmt.Errorf("flush partial file: %w", err)
	}

	if expected != "" {
		if got := hex.EncodeToString(hash.Sum(nil)); got != expected {
			return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, got)
		}
	}

	if err = part.Close(); err != nil {
		return fmt.Errorf("close partial file: %w", err)
	}
	if err = os.Rename(partPath, opts.Destination); err != nil {
		return fmt.Errorf("rename partial file: %w", err)
	}
	return nil
}

func newDownloadBar(noProgress bool, contentLength int64) *progressbar.ProgressBar {
	if noProgress || contentLength <= 0 || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	return progressbar.NewOptions64(contentLength,
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}
