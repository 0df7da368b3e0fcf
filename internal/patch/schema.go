package patch

import "github.com/hashicorp/hcl/v2"

// fileRoot is decoded from every patch file.
type fileRoot struct {
	ValueTypes []*valueTypeBlock `hcl:"value_type,block"`
	NodeTypes  []*nodeTypeBlock  `hcl:"node_type,block"`
	Nodes      []*nodeBlock      `hcl:"node,block"`
	Links      []*linkBlock      `hcl:"link,block"`
	Terminal   *string           `hcl:"terminal,optional"`
}

type valueTypeBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type"`
	Default  hcl.Expression `hcl:"default,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

type nodeTypeBlock struct {
	Name     string       `hcl:"name,label"`
	Inputs   []*portBlock `hcl:"input,block"`
	Outputs  []*portBlock `hcl:"output,block"`
	DefRange hcl.Range    `hcl:",def_range"`
}

// portBlock declares an input or output. Only outputs may carry an expr.
type portBlock struct {
	Name     string         `hcl:"name,label"`
	Type     string         `hcl:"type"`
	Access   *string        `hcl:"access,optional"`
	Expr     hcl.Expression `hcl:"expr,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

type nodeBlock struct {
	Name     string         `hcl:"name,label"`
	Type     string         `hcl:"type"`
	Inputs   hcl.Expression `hcl:"inputs,optional"`
	Outputs  hcl.Expression `hcl:"outputs,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

type linkBlock struct {
	From     hcl.Expression `hcl:"from"`
	To       hcl.Expression `hcl:"to"`
	DefRange hcl.Range      `hcl:",def_range"`
}
