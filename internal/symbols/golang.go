package symbols

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/xonecas/amble/internal/buffer"
)

func parseGo(src []byte) ([]Symbol, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse go: %w", err)
	}
	defer tree.Close()

	var syms []Symbol
	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		switch decl.Type() {
		case "function_declaration":
			if name := decl.ChildByFieldName("name"); name != nil {
				syms = append(syms, symbolAt(name, name.Content(src), KindFunction, src))
			}
		case "method_declaration":
			name := decl.ChildByFieldName("name")
			if name == nil {
				continue
			}
			label := name.Content(src)
			if recv := receiverType(decl.ChildByFieldName("receiver"), src); recv != "" {
				label = recv + "." + label
			}
			syms = append(syms, symbolAt(name, label, KindMethod, src))
		case "type_declaration":
			syms = append(syms, specs(decl, src, KindType, "type_spec", "type_alias")...)
		case "const_declaration":
			syms = append(syms, specs(decl, src, KindConst, "const_spec")...)
		case "var_declaration":
			syms = append(syms, specs(decl, src, KindVar, "var_spec")...)
		}
	}
	return syms, nil
}

func specs(decl *sitter.Node, src []byte, kind Kind, types ...string) []Symbol {
	var syms []Symbol
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		spec := decl.NamedChild(i)
		if strings.HasSuffix(spec.Type(), "_spec_list") {
			syms = append(syms, specs(spec, src, kind, types...)...)
			continue
		}
		if !hasType(spec, types) {
			continue
		}
		if name := spec.ChildByFieldName("name"); name != nil {
			syms = append(syms, symbolAt(name, name.Content(src), kind, src))
		}
	}
	return syms
}

func hasType(n *sitter.Node, types []string) bool {
	for _, t := range types {
		if n.Type() == t {
			return true
		}
	}
	return false
}

// receiverType reduces "(s *Server)" to "Server".
func receiverType(recv *sitter.Node, src []byte) string {
	if recv == nil {
		return ""
	}
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		param := recv.NamedChild(i)
		if param.Type() != "parameter_declaration" {
			continue
		}
		if t := param.ChildByFieldName("type"); t != nil {
			name := strings.TrimPrefix(t.Content(src), "*")
			if idx := strings.IndexByte(name, '['); idx >= 0 {
				name = name[:idx]
			}
			return name
		}
	}
	return ""
}

// symbolAt converts the node's byte column into a grapheme offset.
func symbolAt(node *sitter.Node, label string, kind Kind, src []byte) Symbol {
	row := int(node.StartPoint().Row)
	col := int(node.StartPoint().Column)
	lineStart := int(node.StartByte()) - col
	prefix := string(src[lineStart : lineStart+col])
	return Symbol{
		Name:     label,
		Kind:     kind,
		Position: buffer.Position{Line: row, Offset: len(buffer.Graphemes(prefix))},
	}
}
