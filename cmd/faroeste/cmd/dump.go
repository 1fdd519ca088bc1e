package cmd

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/faroeste-lang/faroeste"
	"gopkg.in/yaml.v3"
)

type symbolView struct {
	Name string `yaml:"name" toml:"name"`
	Kind string `yaml:"kind" toml:"kind"`
	Type string `yaml:"type" toml:"type"`
	Line int    `yaml:"line" toml:"line"`
}

type scopeView struct {
	Depth   int          `yaml:"depth" toml:"depth"`
	Symbols []symbolView `yaml:"symbols" toml:"symbols"`
}

// scopeDump is the serialized form of the analyzer's scopes. Open lists
// the scopes still open after analysis, innermost first; Closed lists the
// scopes popped during analysis, in pop order.
type scopeDump struct {
	Open   []scopeView `yaml:"open" toml:"open"`
	Closed []scopeView `yaml:"closed,omitempty" toml:"closed,omitempty"`
}

func viewScope(s *faroeste.Scope) scopeView {
	v := scopeView{Depth: s.Depth, Symbols: []symbolView{}}
	for _, sym := range s.Symbols {
		v.Symbols = append(v.Symbols, symbolView{
			Name: sym.Name,
			Kind: sym.Kind.String(),
			Type: faroeste.TypeToSExpr(sym.Type),
			Line: sym.Line,
		})
	}
	return v
}

func newScopeDump(res *faroeste.Result) scopeDump {
	var d scopeDump
	for _, s := range res.Symbols.Scopes() {
		d.Open = append(d.Open, viewScope(s))
	}
	for _, s := range res.Trace {
		d.Closed = append(d.Closed, viewScope(s))
	}
	return d
}

func writeScopes(w io.Writer, res *faroeste.Result, format faroeste.Format) error {
	d := newScopeDump(res)
	switch format {
	case faroeste.FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	case faroeste.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported scope format %s", format)
}
