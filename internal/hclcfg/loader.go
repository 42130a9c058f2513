package hclcfg

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL pipeline-file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level structure of a pipeline file.
type fileRoot struct {
	Pipeline *pipelineBlock `hcl:"pipeline,block"`
}

// pipelineBlock mirrors the five stages. Every block and every attribute
// is optional; anything omitted keeps its value from the base model.
type pipelineBlock struct {
	Lint   *lintBlock   `hcl:"lint,block"`
	Test   *testBlock   `hcl:"test,block"`
	Clean  *cleanBlock  `hcl:"clean,block"`
	Build  *buildBlock  `hcl:"build,block"`
	Upload *uploadBlock `hcl:"upload,block"`
}

type lintBlock struct {
	Checker *string `hcl:"checker,optional"`
	Pattern *string `hcl:"pattern,optional"`
}

type testBlock struct {
	Runner  *string `hcl:"runner,optional"`
	PathVar *string `hcl:"path_var,optional"`
}

type cleanBlock struct {
	OutputDir *string `hcl:"output_dir,optional"`
}

type buildBlock struct {
	Tool *string  `hcl:"tool,optional"`
	Args []string `hcl:"args,optional"`
}

type uploadBlock struct {
	Tool       *string `hcl:"tool,optional"`
	Username   *string `hcl:"username,optional"`
	Pattern    *string `hcl:"pattern,optional"`
	Repository *string `hcl:"repository,optional"`
}

// Load implements config.Loader. Attribute expressions are evaluated with
// a `workdir` variable in scope, so a pipeline file can reference the
// working directory ("${workdir}/build" and the like).
func (l *Loader) Load(ctx context.Context, path string, base *config.Model) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("No pipeline file present, using defaults.", "path", path)
		return base, nil
	} else if err != nil {
		return nil, fmt.Errorf("error accessing pipeline file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse pipeline file %s: %w", path, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"workdir": cty.StringVal(base.WorkDir),
		},
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode pipeline file %s: %w", path, diags)
	}

	merged := *base
	if root.Pipeline != nil {
		applyPipeline(&merged, root.Pipeline)
	}
	logger.Debug("Pipeline file applied over defaults.", "path", path)
	return &merged, nil
}

func applyPipeline(m *config.Model, p *pipelineBlock) {
	if b := p.Lint; b != nil {
		applyString(&m.Lint.Checker, b.Checker)
		applyString(&m.Lint.Pattern, b.Pattern)
	}
	if b := p.Test; b != nil {
		applyString(&m.Test.Runner, b.Runner)
		applyString(&m.Test.PathVar, b.PathVar)
	}
	if b := p.Clean; b != nil {
		applyString(&m.Clean.OutputDir, b.OutputDir)
	}
	if b := p.Build; b != nil {
		applyString(&m.Build.Tool, b.Tool)
		if b.Args != nil {
			m.Build.Args = b.Args
		}
	}
	if b := p.Upload; b != nil {
		applyString(&m.Upload.Tool, b.Tool)
		applyString(&m.Upload.Username, b.Username)
		applyString(&m.Upload.Pattern, b.Pattern)
		applyString(&m.Upload.Repository, b.Repository)
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
