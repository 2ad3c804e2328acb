package llms

import (
	"context"

	"git.home.luguber.info/inful/llmstxt/internal/foundation/errors"
	"git.home.luguber.info/inful/llmstxt/internal/frontmatter"
)

// TransformUtils are helpers handed to every transform call.
type TransformUtils struct {
	// GetIndexTOC renders the table of contents in the given mode.
	GetIndexTOC       func(mode IndexTOC) string
	RemoveFrontmatter func(content string) string
}

// TransformInput is what a TransformFunc sees for one artifact.
type TransformInput struct {
	Page Artifact
	// Pages is the live artifact list. Replacements made by earlier calls are visible.
	Pages []Artifact
	Index int
	Host  Host
	Utils TransformUtils
}

// TransformFunc may replace an artifact by returning a non-nil result.
// A nil result leaves the artifact unchanged. Errors abort the run.
type TransformFunc func(ctx context.Context, in TransformInput) (*Artifact, error)

// RunTransform calls fn for each artifact in order, replacing artifacts in place.
// The first error is returned as a transform error; artifacts before it keep their replacements.
func RunTransform(ctx context.Context, artifacts []Artifact, fn TransformFunc, host Host, utils TransformUtils) ([]Artifact, error) {
	if fn == nil {
		return artifacts, nil
	}
	if utils.RemoveFrontmatter == nil {
		utils.RemoveFrontmatter = frontmatter.Remove
	}

	for i := range artifacts {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		res, err := fn(ctx, TransformInput{
			Page:  artifacts[i],
			Pages: artifacts,
			Index: i,
			Host:  host,
			Utils: utils,
		})
		if err != nil {
			return artifacts, errors.WrapError(err, errors.CategoryTransform, "transform hook failed").
				WithContext("path", artifacts[i].Path).
				Build()
		}
		if res != nil {
			artifacts[i] = *res
		}
	}
	return artifacts, nil
}
