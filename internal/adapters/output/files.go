package output

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"mail-route-service/internal/domain"
	"mail-route-service/internal/render"
)

const (
	RoutesFileName = "routes.txt"
	WorldFileName  = "world.txt"
	ImageFileName  = "world.png"
)

type outputFile struct {
	name string
	data []byte
}

// WriteFiles writes routes.txt and world.txt into dir, plus world.png when
// withImage is set. It returns the paths written.
func WriteFiles(dir string, res *domain.PlanResult, withImage bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("write files: create %q: %w", dir, err)
	}

	files := []outputFile{
		{RoutesFileName, []byte(render.FormatRoutes(res))},
		{WorldFileName, []byte(render.FormatWorld(res) + "\n")},
	}

	if withImage {
		var buf bytes.Buffer
		if err := render.WritePNG(&buf, res); err != nil {
			return nil, fmt.Errorf("write files: %w", err)
		}
		files = append(files, outputFile{ImageFileName, buf.Bytes()})
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return written, fmt.Errorf("write files: %q: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
