package staticcontent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"warped/internal/domain/content"
)

const DefaultFile = "content.yaml"

// Provider loads content tables from Root/File, falling back to the embedded
// defaults when Root is unset or the file does not exist.
type Provider struct {
	Root string
	File string
}

func (p Provider) Tables(_ context.Context) (content.Tables, error) {
	if strings.TrimSpace(p.Root) == "" {
		return content.Default(), nil
	}
	name := p.File
	if name == "" {
		name = DefaultFile
	}
	path, err := secureJoin(p.Root, name)
	if err != nil {
		return content.Tables{}, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return content.Default(), nil
	}
	if err != nil {
		return content.Tables{}, fmt.Errorf("read content: %w", err)
	}
	return content.Parse(b)
}

var ErrInvalidContentPath = errors.New("invalid content filepath")

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" || filepath.IsAbs(rel) {
		return "", ErrInvalidContentPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	if !strings.HasPrefix(target, rootAbs+string(filepath.Separator)) {
		return "", ErrInvalidContentPath
	}
	return target, nil
}
