package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	qerrors "quote-calculator/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "env"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "logging"},
		{Type: "http"},
		{Type: "relay"},
		{Type: "directory"},
		{Type: "antiforgery"},
		{Type: "tracing"},
		{Type: "display"},
	},
}

// loadHCL decodes path over cfg. Each block decodes into the existing
// section, so attributes the file omits keep their defaults.
func loadHCL(path string, cfg *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return qerrors.Wrap(qerrors.TypeConfig, "failed to parse "+path, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return qerrors.Wrap(qerrors.TypeConfig, "invalid config "+path, diags)
	}

	ctx := evalContext()

	if attr, ok := content.Attributes["env"]; ok {
		if diags := gohcl.DecodeExpression(attr.Expr, ctx, &cfg.Env); diags.HasErrors() {
			return qerrors.Wrap(qerrors.TypeConfig, "invalid env", diags)
		}
	}

	sections := map[string]interface{}{
		"logging":     &cfg.Logging,
		"http":        &cfg.HTTP,
		"relay":       &cfg.Relay,
		"directory":   &cfg.Directory,
		"antiforgery": &cfg.AntiForgery,
		"tracing":     &cfg.Tracing,
		"display":     &cfg.Display,
	}
	for _, block := range content.Blocks {
		if diags := gohcl.DecodeBody(block.Body, ctx, sections[block.Type]); diags.HasErrors() {
			return qerrors.Wrap(qerrors.TypeConfig, "invalid "+block.Type+" block", diags)
		}
	}
	return nil
}

// evalContext exposes the process environment as env.NAME
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	env := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		env = cty.MapVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
