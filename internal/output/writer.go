// Package output writes assembled artifacts below the site output directory.
package output

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/llms"
	"git.home.luguber.info/inful/llmstxt/internal/logfields"
)

// Target resolves an artifact path below outDir. Paths escaping outDir are rejected.
func Target(outDir, artifactPath string) (string, error) {
	target := filepath.Join(outDir, filepath.FromSlash(artifactPath))
	rel, err := filepath.Rel(outDir, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.ValidationError("artifact path escapes output directory").
			WithContext("path", artifactPath).
			WithContext("out_dir", outDir).
			Build()
	}
	return target, nil
}

// Write stores every artifact at outDir+path as UTF-8 text, creating parent
// directories as needed. Existing directories are left as they are.
// The first failure aborts the write.
func Write(ctx context.Context, outDir string, artifacts []llms.Artifact) error {
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, err := Target(outDir, a.Path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create artifact directory").
				WithContext("path", a.Path).
				Fatal().
				Build()
		}
		if err := os.WriteFile(target, []byte(a.Content), 0o644); err != nil {
			return errors.WrapError(fmt.Errorf("write %s: %w", target, err), errors.CategoryFileSystem, "failed to write artifact").
				WithContext("path", a.Path).
				Fatal().
				Build()
		}
		slog.Debug("Wrote artifact", logfields.Artifact(a.Path), logfields.File(target))
	}
	return nil
}
