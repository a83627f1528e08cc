package modes

import "github.com/xonecas/amble/internal/symbols"

// Command runs a command picked by name.
type Command struct {
	picker[string]
}

// NewCommand lists the registered command names.
func NewCommand(names []string, maxResults int) *Command {
	return &Command{picker: newPicker(names, identity, maxResults)}
}

func (*Command) Title() string { return "COMMAND" }

// SymbolJump moves the cursor to a definition in the current buffer.
type SymbolJump struct {
	picker[symbols.Symbol]
}

// NewSymbolJump lists syms by name and kind.
func NewSymbolJump(syms []symbols.Symbol, maxResults int) *SymbolJump {
	return &SymbolJump{picker: newPicker(syms, symbols.Symbol.String, maxResults)}
}

func (*SymbolJump) Title() string { return "SYMBOL" }

// Theme switches the color theme.
type Theme struct {
	picker[string]
}

// NewTheme lists theme names.
func NewTheme(themes []string, maxResults int) *Theme {
	return &Theme{picker: newPicker(themes, identity, maxResults)}
}

func (*Theme) Title() string { return "THEME" }

// Syntax overrides the lexer of the current buffer.
type Syntax struct {
	picker[string]
}

// NewSyntax lists syntax names.
func NewSyntax(syntaxes []string, maxResults int) *Syntax {
	return &Syntax{picker: newPicker(syntaxes, identity, maxResults)}
}

func (*Syntax) Title() string { return "SYNTAX" }

var (
	_ SearchSelect = (*Open)(nil)
	_ SearchSelect = (*Command)(nil)
	_ SearchSelect = (*SymbolJump)(nil)
	_ SearchSelect = (*Theme)(nil)
	_ SearchSelect = (*Syntax)(nil)
)
