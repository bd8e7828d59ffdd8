package models

import "strings"

// DefaultModel is the registry name used when the user does not pick one.
// The large variant gives the best Swedish accuracy and matches what the
// web UI advertises.
const DefaultModel = "large"

// Model describes one entry of the KBLab kb-whisper family. The weights are
// hosted on the Hugging Face hub as quantized GGML files; SHA256URL points
// at the raw Git LFS pointer for the same file, which carries the checksum.
type Model struct {
	Name      string
	HubID     string
	FileName  string
	URL       string
	SHA256    string
	SHA256URL string
}

var registry = map[string]Model{
	"tiny": {
		Name:      "tiny",
		HubID:     "KBLab/kb-whisper-tiny",
		FileName:  "ggml-kb-whisper-tiny-q5_0.bin",
		URL:       "https://huggingface.co/KBLab/kb-whisper-tiny/resolve/main/ggml-model-q5_0.bin",
		SHA256URL: "https://huggingface.co/KBLab/kb-whisper-tiny/raw/main/ggml-model-q5_0.bin",
	},
	"base": {
		Name:      "base",
		HubID:     "KBLab/kb-whisper-base",
		FileName:  "ggml-kb-whisper-base-q5_0.bin",
		URL:       "https://huggingface.co/KBLab/kb-whisper-base/resolve/main/ggml-model-q5_0.bin",
		SHA256URL: "https://huggingface.co/KBLab/kb-whisper-base/raw/main/ggml-model-q5_0.bin",
	},
	"small": {
		Name:      "small",
		HubID:     "KBLab/kb-whisper-small",
		FileName:  "ggml-kb-whisper-small-q5_0.bin",
		URL:       "https://huggingface.co/KBLab/kb-whisper-small/resolve/main/ggml-model-q5_0.bin",
		SHA256URL: "https://huggingface.co/KBLab/kb-whisper-small/raw/main/ggml-model-q5_0.bin",
	},
	"medium": {
		Name:      "medium",
		HubID:     "KBLab/kb-whisper-medium",
		FileName:  "ggml-kb-whisper-medium-q5_0.bin",
		URL:       "https://huggingface.co/KBLab/kb-whisper-medium/resolve/main/ggml-model-q5_0.bin",
		SHA256URL: "https://huggingface.co/KBLab/kb-whisper-medium/raw/main/ggml-model-q5_0.bin",
	},
	"large": {
		Name:      "large",
		HubID:     "KBLab/kb-whisper-large",
		FileName:  "ggml-kb-whisper-large-q5_0.bin",
		URL:       "https://huggingface.co/KBLab/kb-whisper-large/resolve/main/ggml-model-q5_0.bin",
		SHA256URL: "https://huggingface.co/KBLab/kb-whisper-large/raw/main/ggml-model-q5_0.bin",
	},
}

// order lists the registry by increasing model size, which is how the CLI
// presents them.
var order = []string{"tiny", "base", "small", "medium", "large"}

func ModelNames() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}

func All() []Model {
	out := make([]Model, 0, len(order))
	for _, name := range order {
		out = append(out, registry[name])
	}
	return out
}

// Lookup finds a registry entry by short name ("large"), by file stem
// ("kb-whisper-large"), or by full hub id ("KBLab/kb-whisper-large").
// Matching is case-insensitive.
func Lookup(ref string) (Model, bool) {
	name := strings.ToLower(strings.TrimSpace(ref))
	name = strings.TrimPrefix(name, "kblab/")
	name = strings.TrimPrefix(name, "kb-whisper-")
	model, ok := registry[name]
	return model, ok
}
