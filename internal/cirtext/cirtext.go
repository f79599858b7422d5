// Package cirtext reads a small line-oriented description of a CIR
// module. It exists for tooling input; it is not a serialization of the
// graph, which stays an in-memory structure.
//
// Format, by example:
//
//	module demo
//
//	func main -> int
//	bb entry(%x: int, %c: bool @owned)
//	  op load %x
//	  cond_br %c, then, done(%x)
//	bb then
//	  br done(%x)
//	bb done(%r: int)
//	  ret %r
//	end
//
// The first bb of a function is its entry and declares function
// arguments; every later bb declares phi arguments. Blank lines and
// lines starting with '#' are skipped.
package cirtext

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cinder/internal/cir"
	"cinder/internal/decls"
	"cinder/internal/types"
)

type line struct {
	no     int
	fields []string
}

// ParseFile reads a module description from a file.
func ParseFile(path string) (*cir.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse reads a module description.
func Parse(r io.Reader) (*cir.Module, error) {
	lines, err := scan(r)
	if err != nil {
		return nil, err
	}
	m := cir.NewModule("module")

	i := 0
	if i < len(lines) && lines[i].fields[0] == "module" {
		if len(lines[i].fields) != 2 {
			return nil, errAt(lines[i], "module header wants one name")
		}
		m.Name = lines[i].fields[1]
		i++
	}
	for i < len(lines) {
		if lines[i].fields[0] != "func" {
			return nil, errAt(lines[i], "expected func, got %q", lines[i].fields[0])
		}
		end := i + 1
		for end < len(lines) && lines[end].fields[0] != "end" {
			end++
		}
		if end == len(lines) {
			return nil, errAt(lines[i], "func without matching end")
		}
		if err := parseFunc(m, lines[i], lines[i+1:end]); err != nil {
			return nil, err
		}
		i = end + 1
	}
	return m, nil
}

func scan(r io.Reader) ([]line, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, line{no: no, fields: tokenize(text)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// tokenize splits a line into fields, detaching punctuation so the
// grammar can treat parentheses and colons as tokens.
func tokenize(text string) []string {
	var sb strings.Builder
	for _, r := range text {
		switch r {
		case '(', ')', ':':
			sb.WriteByte(' ')
			sb.WriteRune(r)
			sb.WriteByte(' ')
		case ',':
			sb.WriteByte(' ')
		default:
			sb.WriteRune(r)
		}
	}
	return strings.Fields(sb.String())
}

func errAt(l line, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", l.no, fmt.Sprintf(format, args...))
}

type funcParser struct {
	m      *cir.Module
	f      *cir.Function
	blocks map[string]*cir.Block
	values map[string]cir.Value
}

func parseFunc(m *cir.Module, header line, body []line) error {
	fields := header.fields
	if len(fields) < 2 {
		return errAt(header, "func wants a name")
	}
	result := types.NoTypeID
	if len(fields) > 2 {
		if fields[2] != "->" || len(fields) != 4 {
			return errAt(header, "malformed func result")
		}
		result = m.Types.Intern(typeFor(fields[3]))
	}
	p := &funcParser{
		m:      m,
		f:      m.NewFunction(fields[1], result),
		blocks: make(map[string]*cir.Block),
		values: make(map[string]cir.Value),
	}

	// First pass: declare blocks and their arguments so branches can
	// reference any block in the function.
	for _, l := range body {
		if l.fields[0] != "bb" {
			continue
		}
		if err := p.declareBlock(l); err != nil {
			return err
		}
	}
	if p.f.NumBlocks() == 0 {
		return errAt(header, "func %s has no blocks", p.f.Name())
	}

	var cur *cir.Block
	for _, l := range body {
		if l.fields[0] == "bb" {
			cur = p.blocks[l.fields[1]]
			continue
		}
		if cur == nil {
			return errAt(l, "instruction outside a bb")
		}
		inst, err := p.parseInst(l)
		if err != nil {
			return err
		}
		cur.PushBack(inst)
	}
	return nil
}

func (p *funcParser) declareBlock(l line) error {
	if len(l.fields) < 2 {
		return errAt(l, "bb wants a name")
	}
	name := l.fields[1]
	if _, dup := p.blocks[name]; dup {
		return errAt(l, "duplicate bb %s", name)
	}
	entry := p.f.NumBlocks() == 0
	b := p.f.NewBlock()
	p.blocks[name] = b

	toks := l.fields[2:]
	if len(toks) == 0 {
		return nil
	}
	if toks[0] != "(" || toks[len(toks)-1] != ")" {
		return errAt(l, "malformed bb argument list")
	}
	toks = toks[1 : len(toks)-1]
	for len(toks) > 0 {
		if len(toks) < 3 || toks[1] != ":" {
			return errAt(l, "malformed bb argument")
		}
		vname, tname := toks[0], toks[2]
		toks = toks[3:]
		ownership := cir.OwnershipNone
		if len(toks) > 0 && strings.HasPrefix(toks[0], "@") {
			k, err := ownershipFor(toks[0][1:])
			if err != nil {
				return errAt(l, "%v", err)
			}
			ownership = k
			toks = toks[1:]
		}
		if !strings.HasPrefix(vname, "%") {
			return errAt(l, "argument name %q must start with %%", vname)
		}
		if _, dup := p.values[vname]; dup {
			return errAt(l, "duplicate value %s", vname)
		}
		ty := p.m.Types.Intern(typeFor(tname))
		d := p.m.Decls.New(vname[1:], decls.KindParam)
		var arg *cir.Argument
		if entry {
			arg = b.InsertFunctionArgument(b.NumArguments(), ty, ownership, d)
		} else {
			arg = b.NewPhiArgument(ty, ownership, d)
		}
		p.values[vname] = arg
	}
	return nil
}

func (p *funcParser) parseInst(l line) (cir.Instruction, error) {
	toks := l.fields
	switch toks[0] {
	case "op":
		if len(toks) < 2 {
			return nil, errAt(l, "op wants a name")
		}
		operands, err := p.parseValues(l, toks[2:])
		if err != nil {
			return nil, err
		}
		return cir.NewOp(toks[1], operands...), nil

	case "br":
		dest, args, rest, err := p.parseDest(l, toks[1:])
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, errAt(l, "trailing tokens after br destination")
		}
		return cir.NewBranch(dest, args...), nil

	case "cond_br":
		if len(toks) < 2 {
			return nil, errAt(l, "cond_br wants a condition")
		}
		cond, err := p.value(l, toks[1])
		if err != nil {
			return nil, err
		}
		trueDest, trueArgs, rest, err := p.parseDest(l, toks[2:])
		if err != nil {
			return nil, err
		}
		falseDest, falseArgs, rest, err := p.parseDest(l, rest)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, errAt(l, "trailing tokens after cond_br destinations")
		}
		return cir.NewCondBranch(cond, trueDest, trueArgs, falseDest, falseArgs), nil

	case "switch":
		if len(toks) < 3 {
			return nil, errAt(l, "switch wants an operand and destinations")
		}
		operand, err := p.value(l, toks[1])
		if err != nil {
			return nil, err
		}
		var dests []*cir.Block
		for _, name := range toks[2:] {
			dest, ok := p.blocks[name]
			if !ok {
				return nil, errAt(l, "unknown bb %s", name)
			}
			dests = append(dests, dest)
		}
		return cir.NewSwitch(operand, dests...), nil

	case "ret":
		if len(toks) == 1 {
			return cir.NewReturn(nil), nil
		}
		v, err := p.value(l, toks[1])
		if err != nil {
			return nil, err
		}
		return cir.NewReturn(v), nil

	case "unreachable":
		return cir.NewUnreachable(), nil
	}
	return nil, errAt(l, "unknown instruction %q", toks[0])
}

// parseDest reads "name" or "name ( values )" and returns the remaining
// tokens.
func (p *funcParser) parseDest(l line, toks []string) (*cir.Block, []cir.Value, []string, error) {
	if len(toks) == 0 {
		return nil, nil, nil, errAt(l, "missing destination")
	}
	dest, ok := p.blocks[toks[0]]
	if !ok {
		return nil, nil, nil, errAt(l, "unknown bb %s", toks[0])
	}
	toks = toks[1:]
	if len(toks) == 0 || toks[0] != "(" {
		return dest, nil, toks, nil
	}
	end := 1
	for end < len(toks) && toks[end] != ")" {
		end++
	}
	if end == len(toks) {
		return nil, nil, nil, errAt(l, "unterminated destination argument list")
	}
	args, err := p.parseValues(l, toks[1:end])
	if err != nil {
		return nil, nil, nil, err
	}
	return dest, args, toks[end+1:], nil
}

func (p *funcParser) parseValues(l line, toks []string) ([]cir.Value, error) {
	var out []cir.Value
	for len(toks) > 0 {
		if toks[0] == "undef" {
			if len(toks) < 3 || toks[1] != ":" {
				return nil, errAt(l, "undef wants a type")
			}
			out = append(out, cir.Undef{T: p.m.Types.Intern(typeFor(toks[2]))})
			toks = toks[3:]
			continue
		}
		v, err := p.value(l, toks[0])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		toks = toks[1:]
	}
	return out, nil
}

func (p *funcParser) value(l line, tok string) (cir.Value, error) {
	if !strings.HasPrefix(tok, "%") {
		return nil, errAt(l, "expected value reference, got %q", tok)
	}
	v, ok := p.values[tok]
	if !ok {
		return nil, errAt(l, "unknown value %s", tok)
	}
	return v, nil
}

func typeFor(name string) types.Type {
	if pointee, ok := strings.CutPrefix(name, "*"); ok {
		return types.MakePointer(pointee)
	}
	switch name {
	case "unit":
		return types.Type{Kind: types.KindUnit}
	case "bool":
		return types.Type{Kind: types.KindBool}
	case "int":
		return types.Type{Kind: types.KindInt}
	case "float":
		return types.Type{Kind: types.KindFloat}
	case "string":
		return types.Type{Kind: types.KindString}
	default:
		return types.MakeNamed(name)
	}
}

func ownershipFor(name string) (cir.OwnershipKind, error) {
	switch name {
	case "none":
		return cir.OwnershipNone, nil
	case "owned":
		return cir.OwnershipOwned, nil
	case "guaranteed":
		return cir.OwnershipGuaranteed, nil
	case "unowned":
		return cir.OwnershipUnowned, nil
	case "any":
		return cir.OwnershipAny, nil
	default:
		return cir.OwnershipNone, fmt.Errorf("unknown ownership %q", name)
	}
}
