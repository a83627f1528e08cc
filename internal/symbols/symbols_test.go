package symbols

import (
	"testing"

	"github.com/xonecas/amble/internal/buffer"
)

const goSource = `package demo

import "fmt"

const Answer = 42

var (
	verbose bool
)

type Server struct {
	addr string
}

type Handler interface {
	Serve()
}

func New() *Server { return &Server{} }

func (s *Server) Start() error {
	fmt.Println(s.addr)
	return nil
}
`

func TestExtractGo(t *testing.T) {
	b := buffer.FromString(goSource)
	b.Path = "demo.go"
	syms, err := Extract(b)
	if err != nil {
		t.Fatal(err)
	}

	want := []Symbol{
		{Name: "Answer", Kind: KindConst, Position: buffer.Position{Line: 4, Offset: 6}},
		{Name: "verbose", Kind: KindVar, Position: buffer.Position{Line: 7, Offset: 1}},
		{Name: "Server", Kind: KindType, Position: buffer.Position{Line: 10, Offset: 5}},
		{Name: "Handler", Kind: KindType, Position: buffer.Position{Line: 14, Offset: 5}},
		{Name: "New", Kind: KindFunction, Position: buffer.Position{Line: 18, Offset: 5}},
		{Name: "Server.Start", Kind: KindMethod, Position: buffer.Position{Line: 20, Offset: 17}},
	}
	if len(syms) != len(want) {
		t.Fatalf("got %d symbols: %+v", len(syms), syms)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("symbol %d = %+v, want %+v", i, syms[i], want[i])
		}
	}
}

func TestExtractFallsBackToLexer(t *testing.T) {
	b := buffer.FromString("def greet(name):\n    return name\n\nclass Greeter:\n    pass\n")
	b.Path = "greet.py"
	syms, err := Extract(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(syms) != 2 {
		t.Fatalf("symbols = %+v", syms)
	}
	if syms[0].Name != "greet" || syms[0].Position != (buffer.Position{Line: 0, Offset: 4}) {
		t.Errorf("first = %+v", syms[0])
	}
	if syms[1].Name != "Greeter" || syms[1].Kind != KindType || syms[1].Position.Line != 3 {
		t.Errorf("second = %+v", syms[1])
	}
	if syms[1].String() != "type Greeter" {
		t.Errorf("label = %q", syms[1].String())
	}
}
