package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolvedModel is the outcome of mapping a user-supplied model reference to
// a concrete file on disk, possibly one that still has to be downloaded.
type ResolvedModel struct {
	Name          string
	HubID         string
	Path          string
	URL           string
	SHA256        string
	SHA256URL     string
	NeedsDownload bool
	IsCustomPath  bool
}

// Resolve maps modelRef to a ResolvedModel. A registry reference (short
// name, file stem, or hub id) resolves into modelDir; anything that looks
// like a filesystem path is treated as a custom GGML file and must already
// exist. Hub ids contain a slash, so the registry lookup has to run before
// the path heuristic.
func Resolve(modelRef, modelDir string) (ResolvedModel, error) {
	ref := strings.TrimSpace(modelRef)
	if ref == "" {
		ref = DefaultModel
	}

	if model, ok := Lookup(ref); ok {
		return resolveNamed(model, modelDir)
	}
	if looksLikePath(ref) {
		return resolveCustom(ref)
	}
	return ResolvedModel{}, fmt.Errorf("unknown model %q (known models: %s)", ref, strings.Join(ModelNames(), ", "))
}

func resolveNamed(model Model, modelDir string) (ResolvedModel, error) {
	if strings.TrimSpace(modelDir) == "" {
		return ResolvedModel{}, errors.New("model directory must not be empty for named model")
	}

	resolved := ResolvedModel{
		Name:      model.Name,
		HubID:     model.HubID,
		Path:      filepath.Join(modelDir, model.FileName),
		URL:       model.URL,
		SHA256:    model.SHA256,
		SHA256URL: model.SHA256URL,
	}

	switch _, err := os.Stat(resolved.Path); {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		resolved.NeedsDownload = true
	default:
		return ResolvedModel{}, fmt.Errorf("stat model path: %w", err)
	}

	return resolved, nil
}

func resolveCustom(ref string) (ResolvedModel, error) {
	path := filepath.Clean(ref)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ResolvedModel{}, fmt.Errorf("custom model path does not exist: %s", path)
		}
		return ResolvedModel{}, fmt.Errorf("stat custom model path: %w", err)
	}
	return ResolvedModel{Path: path, IsCustomPath: true}, nil
}

func looksLikePath(ref string) bool {
	return strings.ContainsAny(ref, `/\`) || strings.HasSuffix(strings.ToLower(ref), ".bin")
}
