package cir

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"cinder/internal/types"
)

// DumpOptions configures the textual dump.
type DumpOptions struct {
	// PredComments appends "// preds: ..." comments to block headers.
	PredComments bool
	// CommentColumn is the column trailing comments align to; 0 picks
	// the default.
	CommentColumn int
}

func (o DumpOptions) column() int {
	if o.CommentColumn <= 0 {
		return 44
	}
	return o.CommentColumn
}

// DumpModule writes a human-readable representation of the module.
func DumpModule(w io.Writer, m *Module, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	for i, f := range m.funcs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := DumpFunction(w, f, opts); err != nil {
			return err
		}
	}
	return nil
}

// DumpFunction writes one function. The dump is read-only; it consumes
// the same traversal surface any presentation layer would.
func DumpFunction(w io.Writer, f *Function, opts DumpOptions) error {
	if w == nil || f == nil {
		return nil
	}
	p := &printer{f: f, names: make(map[Value]string)}
	for _, b := range f.blocks {
		for _, arg := range b.args {
			p.names[arg] = fmt.Sprintf("%%%d", len(p.names))
		}
	}

	result := "()"
	if f.result.IsValid() {
		result = p.typeStr(f.result)
	}
	fmt.Fprintf(w, "fn %s -> %s {\n", f.name, result)
	for i, b := range f.blocks {
		header := p.blockHeader(i, b)
		if opts.PredComments {
			header = alignComment(header, p.predComment(b), opts.column())
		}
		fmt.Fprintln(w, header)
		for _, inst := range b.instrs {
			fmt.Fprintf(w, "  %s\n", p.instStr(inst))
		}
	}
	fmt.Fprintln(w, "}")
	return nil
}

type printer struct {
	f     *Function
	names map[Value]string
}

func (p *printer) blockHeader(i int, b *Block) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "bb%d", i)
	if len(b.args) > 0 {
		sb.WriteByte('(')
		for j, arg := range b.args {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.names[arg])
			sb.WriteString(" : ")
			if arg.ownership != OwnershipNone {
				fmt.Fprintf(&sb, "@%s ", arg.ownership)
			}
			sb.WriteString(p.typeStr(arg.typ))
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(':')
	return sb.String()
}

func (p *printer) predComment(b *Block) string {
	if b.PredEmpty() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("// preds:")
	for s := b.FirstPred(); s != nil; s = s.NextPred() {
		sb.WriteByte(' ')
		sb.WriteString(p.blockLabel(s.Pred()))
	}
	return sb.String()
}

func (p *printer) instStr(inst Instruction) string {
	switch inst := inst.(type) {
	case *OpInst:
		if len(inst.Operands) == 0 {
			return "op " + inst.Name
		}
		return fmt.Sprintf("op %s(%s)", inst.Name, p.valueList(inst.Operands))
	case *BranchInst:
		return "br " + p.destStr(inst.Successors()[0], inst.Args)
	case *CondBranchInst:
		return fmt.Sprintf("cond_br %s, %s, %s",
			p.valueStr(inst.Cond),
			p.destStr(inst.Successors()[0], inst.TrueArgs),
			p.destStr(inst.Successors()[1], inst.FalseArgs))
	case *SwitchInst:
		var sb strings.Builder
		sb.WriteString("switch ")
		sb.WriteString(p.valueStr(inst.Operand))
		for _, s := range inst.Successors() {
			sb.WriteString(", ")
			sb.WriteString(p.blockLabel(s.Block()))
		}
		return sb.String()
	case *ReturnInst:
		if inst.Result == nil {
			return "ret"
		}
		return "ret " + p.valueStr(inst.Result)
	case *UnreachableInst:
		return "unreachable"
	default:
		return fmt.Sprintf("<%T>", inst)
	}
}

func (p *printer) destStr(s *Successor, args []Value) string {
	label := p.blockLabel(s.Block())
	if len(args) == 0 {
		return label
	}
	return fmt.Sprintf("%s(%s)", label, p.valueList(args))
}

func (p *printer) valueList(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = p.valueStr(v)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) valueStr(v Value) string {
	if v == nil {
		return "<nil>"
	}
	if name, ok := p.names[v]; ok {
		return name
	}
	if u, ok := v.(Undef); ok {
		return "undef : " + p.typeStr(u.T)
	}
	return "%?"
}

func (p *printer) blockLabel(b *Block) string {
	if b == nil {
		return "bb?"
	}
	i := b.DebugID()
	if i < 0 {
		return "bb?"
	}
	return fmt.Sprintf("bb%d", i)
}

func (p *printer) typeStr(id types.TypeID) string {
	if m := p.f.module; m != nil && m.Types != nil {
		return m.Types.String(id)
	}
	return fmt.Sprintf("t%d", id)
}

func alignComment(line, comment string, col int) string {
	if comment == "" {
		return line
	}
	pad := col - runewidth.StringWidth(line)
	if pad < 1 {
		pad = 1
	}
	return line + strings.Repeat(" ", pad) + comment
}
