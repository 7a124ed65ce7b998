package export

import (
	"fmt"
	"os"
	"path/filepath"

	"kursnet-xml-tool/internal/openqcat"
)

// WriteDiffFile stores a rendered differential update as
// outDir/differenz_seq_<seq>.xml and returns the path.
func WriteDiffFile(outDir string, seqNumber int, data []byte) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", outDir, err)
	}
	outPath := filepath.Join(outDir, openqcat.DiffFileName(seqNumber))
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", outPath, err)
	}
	return outPath, nil
}
