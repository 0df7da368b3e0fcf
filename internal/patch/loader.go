package patch

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/kiwigraph/internal/ctxlog"
	"github.com/vk/kiwigraph/internal/fsutil"
	"github.com/vk/kiwigraph/internal/registry"
	"github.com/vk/kiwigraph/internal/scheduler"
)

// Loader builds patches against a node type registry. Types declared by a
// patch are registered into that registry and stay there even if a later
// step of the load fails.
type Loader struct {
	reg *registry.Registry
}

// NewLoader creates a loader for reg.
func NewLoader(reg *registry.Registry) *Loader {
	return &Loader{reg: reg}
}

// Load reads every .hcl file under paths (files or directories, walked
// recursively) and builds one patch from all of them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Patch, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v: %w", paths, ErrInvalidPatch)
	}
	logger.Debug("Discovered patch files.", "count", len(files))

	parser := hclparse.NewParser()
	roots := make([]*fileRoot, 0, len(files))
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse patch file %s: %w", file, diags)
		}
		root, err := decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode patch file %s: %w", file, err)
		}
		roots = append(roots, root)
	}
	return l.build(ctx, roots)
}

// LoadSource builds a patch from in-memory HCL. filename is used in
// diagnostics only.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*Patch, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse patch %s: %w", filename, diags)
	}
	root, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patch %s: %w", filename, err)
	}
	return l.build(ctx, []*fileRoot{root})
}

func decode(f *hcl.File) (*fileRoot, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	return &root, nil
}

func (l *Loader) build(ctx context.Context, roots []*fileRoot) (*Patch, error) {
	logger := ctxlog.FromContext(ctx)
	b := &builder{reg: l.reg, patch: newPatch()}

	for _, step := range []func(context.Context, []*fileRoot) error{
		b.valueTypes,
		b.nodeTypes,
		b.nodes,
		b.links,
		b.terminal,
	} {
		if err := step(ctx, roots); err != nil {
			b.patch.Destroy(ctx)
			return nil, err
		}
	}

	if err := scheduler.DetectCycles(b.patch.Nodes()...); err != nil {
		b.patch.Destroy(ctx)
		return nil, err
	}

	logger.Info("Patch loaded.",
		"value_types", len(b.patch.ValueTypes),
		"node_types", len(b.patch.NodeTypes),
		"nodes", len(b.patch.order),
	)
	return b.patch, nil
}
