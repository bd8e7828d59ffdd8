package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taltext/taltext/internal/audio"
)

// listAudioFiles returns the supported audio files directly inside dir,
// sorted by name. Subdirectories are not descended into.
func listAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audio.IsSupported(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// transcriptFileName maps an audio file name to its transcript file name,
// e.g. "interview.wav" becomes "interview_transcription.txt".
func transcriptFileName(audioPath string) string {
	base := filepath.Base(audioPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_transcription.txt"
}

// resolveOutputPath maps the -o value to a concrete file. Naming an existing
// directory stores the transcript inside it under the batch naming scheme.
func resolveOutputPath(output, audioPath string) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, transcriptFileName(audioPath))
	}
	return output
}

func writeTranscript(path, text string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript %s: %w", path, err)
	}
	return nil
}

func supportedList() string {
	return strings.Join(audio.SupportedExtensions(), ", ")
}
