package arb

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/gogpu/arbconv/ir"
)

// Relative addressing offsets accepted in A0.x+n.
const (
	minAddressOffset = -64
	maxAddressOffset = 63
)

func (p *Parser) beginInstruction(tok Token) {
	name := tok.Lexeme
	saturate := strings.HasSuffix(name, "_SAT")
	op, ok := ir.LookupOpcode(strings.TrimSuffix(name, "_SAT"))
	if !ok {
		p.fail(KindGrammar, tok.Offset, "unknown instruction %q", name)
		return
	}
	info := op.Info()
	if !info.Stages.Allows(p.prog.Stage) {
		p.fail(KindSemantic, tok.Offset, "%s is not available in %s programs", info.Name, p.prog.Stage)
		return
	}
	if saturate && p.prog.Stage == ir.StageVertex {
		p.fail(KindGrammar, tok.Offset, "saturation is not available in vertex programs")
		return
	}

	slots := make([]slotKind, 0, ir.MaxOperands)
	if info.HasDst {
		slots = append(slots, slotDst)
	}
	for _, src := range info.Sources {
		if src == ir.SourceScalar {
			slots = append(slots, slotScalar)
		} else {
			slots = append(slots, slotVector)
		}
	}
	if info.Texture {
		slots = append(slots, slotTexture)
	}

	p.stmt.kind = stmtInstruction
	p.stmt.inst = &ir.Instruction{Op: op, Saturate: saturate, Offset: tok.Offset}
	p.stmt.slots = slots
	p.stmt.slot = 0
	p.beginOperand()
}

func (p *Parser) beginOperand() {
	p.stmt.operand = &p.stmt.inst.Operands[p.stmt.slot]
	p.state = StateOperand
}

func (p *Parser) slotKind() slotKind {
	return p.stmt.slots[p.stmt.slot]
}

// semantic fails with an error located at the instruction's first token.
func (p *Parser) semantic(format string, args ...any) bool {
	p.fail(KindSemantic, p.stmt.inst.Offset, format, args...)
	return false
}

// instruction handles the operand states.
func (p *Parser) instruction(tok Token) bool {
	op := p.stmt.operand

	switch p.state {
	case StateOperand:
		switch p.slotKind() {
		case slotTexture:
			if tok.Kind != TokenIdent || tok.Lexeme != "texture" {
				return p.unexpected(tok, "a texture image unit")
			}
			p.stmt.unit = 0
			p.state = StateTextureUnit
			return false
		case slotDst:
			p.state = StateOperandValue
			return true
		}
		p.state = StateOperandValue
		if isSign(tok) {
			op.Sign = ir.SignPlus
			if tok.Kind == TokenMinus {
				op.Sign = ir.SignMinus
			}
			return false
		}
		return true

	case StateOperandValue:
		return p.operandStart(tok)

	case StateOperandSuffix:
		switch tok.Kind {
		case TokenLBracket:
			if !op.Var.Array {
				return p.semantic("%s is not an array", op.Var.Name())
			}
			if op.Indexed {
				return p.unexpected(tok, "'.', ',' or ';'")
			}
			p.state = StateOperandIndex
			return false
		case TokenDot:
			p.state = StateOperandSwizzle
			return false
		}
		p.state = StateOperandEnd
		return true

	case StateOperandIndex:
		switch tok.Kind {
		case TokenInteger:
			n, ok := p.intValue(tok)
			if !ok {
				return false
			}
			if n >= op.Var.Size() {
				p.fail(KindSemantic, tok.Offset, "index %d out of range for %s[%d]", n, op.Var.Name(), op.Var.Size())
				return false
			}
			op.Indexed = true
			op.Index = n
			p.state = StateOperandIndexEnd
		case TokenIdent:
			addr, ok := p.prog.Symbols.Lookup(tok.Lexeme)
			if !ok {
				return p.semantic("undeclared identifier %q", tok.Lexeme)
			}
			if addr.Type != ir.VarAddress {
				return p.semantic("%s is not an address register", tok.Lexeme)
			}
			op.Indexed = true
			op.Address = addr
			p.state = StateAddressDot
		default:
			return p.unexpected(tok, "an index")
		}

	case StateOperandIndexEnd:
		if tok.Kind != TokenRBracket {
			return p.unexpected(tok, "']'")
		}
		p.state = StateOperandSuffix

	case StateAddressDot:
		if tok.Kind != TokenDot {
			return p.unexpected(tok, "'.'")
		}
		p.state = StateAddressComp

	case StateAddressComp:
		if tok.Kind != TokenIdent || tok.Lexeme != "x" {
			return p.unexpected(tok, "address component x")
		}
		op.AddressComp = ir.CompX
		p.state = StateAddressOffset

	case StateAddressOffset:
		switch tok.Kind {
		case TokenRBracket:
			p.state = StateOperandSuffix
		case TokenPlus, TokenMinus:
			p.stmt.addrNeg = tok.Kind == TokenMinus
			p.state = StateAddressOffsetValue
		default:
			return p.unexpected(tok, "']', '+' or '-'")
		}

	case StateAddressOffsetValue:
		if tok.Kind != TokenInteger {
			return p.unexpected(tok, "an address offset")
		}
		n, ok := p.intValue(tok)
		if !ok {
			return false
		}
		if p.stmt.addrNeg {
			n = -n
		}
		if n < minAddressOffset || n > maxAddressOffset {
			p.fail(KindSemantic, tok.Offset, "address offset %d out of range [%d, %d]", n, minAddressOffset, maxAddressOffset)
			return false
		}
		op.Index = n
		p.state = StateOperandIndexEnd

	case StateOperandSwizzle:
		if tok.Kind != TokenIdent {
			return p.unexpected(tok, "a swizzle")
		}
		p.swizzle(tok)

	case StateOperandEnd:
		return p.operandEnd(tok)

	case StateTextureUnit:
		switch tok.Kind {
		case TokenLBracket:
			p.state = StateTextureIndex
		case TokenComma:
			p.state = StateTextureTarget
		default:
			return p.unexpected(tok, "'[' or ','")
		}

	case StateTextureIndex:
		if tok.Kind != TokenInteger {
			return p.unexpected(tok, "a texture unit")
		}
		if tok.Value >= ir.MaxTextureUnits {
			p.fail(KindSemantic, tok.Offset, "texture unit %s out of range (limit %d)", tok.Lexeme, ir.MaxTextureUnits)
			return false
		}
		p.stmt.unit = int(tok.Value)
		p.state = StateTextureIndexEnd

	case StateTextureIndexEnd:
		if tok.Kind != TokenRBracket {
			return p.unexpected(tok, "']'")
		}
		p.state = StateTextureComma

	case StateTextureComma:
		if tok.Kind != TokenComma {
			return p.unexpected(tok, "','")
		}
		p.state = StateTextureTarget

	case StateTextureTarget:
		return p.textureTarget(tok)

	case StateExtSwizzle:
		p.stmt.extNeg = false
		p.state = StateExtSwizzleValue
		if isSign(tok) {
			p.stmt.extNeg = tok.Kind == TokenMinus
			return false
		}
		return true

	case StateExtSwizzleValue:
		return p.extSwizzle(tok)

	case StateExtSwizzleNext:
		switch tok.Kind {
		case TokenComma:
			if p.stmt.extComp == 4 {
				return p.unexpected(tok, "';'")
			}
			p.state = StateExtSwizzle
		case TokenSemicolon:
			if p.stmt.extComp != 4 {
				p.fail(KindGrammar, tok.Offset, "extended swizzle needs four components")
				return false
			}
			p.state = StateTerminator
			return true
		default:
			return p.unexpected(tok, "',' or ';'")
		}
	}
	return false
}

// operandStart reads the register of an operand: a declared name, an inline
// binding or, for sources, an inline constant.
func (p *Parser) operandStart(tok Token) bool {
	dst := p.slotKind() == slotDst
	switch {
	case tok.Kind == TokenIdent:
		if _, ok := bindingRoots[tok.Lexeme]; ok {
			p.beginValue(valueOperand)
			return true
		}
		v, ok := p.prog.Symbols.Lookup(tok.Lexeme)
		if !ok {
			return p.semantic("undeclared identifier %q", tok.Lexeme)
		}
		p.stmt.operand.Var = v
		p.state = StateOperandSuffix
		return false
	case !dst && (isNumber(tok) || tok.Kind == TokenLBrace):
		p.beginValue(valueOperand)
		return true
	}
	if dst {
		return p.unexpected(tok, "a destination register")
	}
	return p.unexpected(tok, "a source register")
}

// operandValue attaches an inline binding or constant to the current
// operand, materialising an implicit variable on first use.
func (p *Parser) operandValue(elems []ir.Element) bool {
	if len(elems) != 1 {
		return p.semantic("binding yields %d vectors where one is expected", len(elems))
	}
	elem := elems[0]
	key := elemKey(elem)
	v, ok := p.prog.Symbols.LookupKey(key)
	if !ok {
		v = &ir.Variable{Key: key, State: ir.VarImplicit, Offset: p.stmt.valueOffset}
		switch b := elem.Binding; {
		case b == nil:
			v.Type = ir.VarConst
			v.Init = elems
		case b.IsInput():
			v.Type = ir.VarAttrib
			v.Binding = b
		case b.IsResult():
			v.Type = ir.VarOutput
			v.Binding = b
		default:
			v.Type = ir.VarParam
			v.Init = elems
		}
		p.prog.Symbols.Add(v)
		if p.trace {
			p.logger.Debug("arb implicit", slog.String("variable", v.String()))
		}
	}
	p.stmt.operand.Var = v
	return true
}

// swizzle applies a swizzle suffix, or a write mask on a destination.
func (p *Parser) swizzle(tok Token) {
	op := p.stmt.operand
	letters := tok.Lexeme
	color := p.prog.Stage == ir.StageFragment

	if p.slotKind() == slotDst {
		var mask ir.WriteMask
		last := ir.CompUnset
		for i := 0; i < len(letters); i++ {
			c, ok := ir.ComponentFromLetter(letters[i], color)
			if !ok || c <= last {
				p.fail(KindGrammar, tok.Offset, "invalid write mask %q", letters)
				return
			}
			last = c
			mask |= 1 << (c - ir.CompX)
		}
		op.Mask = mask
		p.state = StateOperandEnd
		return
	}

	if len(letters) != 1 && len(letters) != 4 {
		p.fail(KindGrammar, tok.Offset, "invalid swizzle %q", letters)
		return
	}
	for i := 0; i < len(letters); i++ {
		c, ok := ir.ComponentFromLetter(letters[i], color)
		if !ok {
			p.fail(KindGrammar, tok.Offset, "invalid swizzle %q", letters)
			return
		}
		op.Swizzle[i] = c
	}
	p.state = StateOperandEnd
}

func (p *Parser) operandEnd(tok Token) bool {
	if tok.Kind != TokenComma && tok.Kind != TokenSemicolon {
		return p.unexpected(tok, "',' or ';'")
	}
	if !p.checkOperand() {
		return false
	}
	inst := p.stmt.inst
	ext := inst.Op.Info().ExtSwizzle
	last := p.stmt.slot == len(p.stmt.slots)-1

	if tok.Kind == TokenSemicolon {
		if !last || ext {
			return p.semantic("too few operands for %s", inst.Mnemonic())
		}
		p.state = StateTerminator
		return true
	}

	if last {
		if ext {
			p.stmt.extComp = 0
			p.state = StateExtSwizzle
			return false
		}
		return p.semantic("too many operands for %s", inst.Mnemonic())
	}
	p.stmt.slot++
	p.beginOperand()
	return false
}

// checkOperand enforces the access rules of a completed operand.
func (p *Parser) checkOperand() bool {
	inst := p.stmt.inst
	op := p.stmt.operand
	v := op.Var

	if p.slotKind() == slotDst {
		if op.Mask == 0 {
			op.Mask = ir.MaskAll
		}
		if inst.Op == ir.OpARL {
			if v.Type != ir.VarAddress {
				return p.semantic("ARL destination must be an address register")
			}
			if op.Mask != ir.MaskX {
				return p.semantic("ARL destination must be written with mask .x")
			}
			return true
		}
		if !v.Writable() {
			return p.semantic("%s %s cannot be written", v.Type, v.Name())
		}
		if v.Array {
			return p.semantic("%s cannot be written", v.Name())
		}
		if inst.Op == ir.OpSCS && op.Mask&(ir.MaskZ|ir.MaskW) != 0 {
			return p.semantic("SCS may only write x and y")
		}
		return true
	}

	if !v.Readable() {
		return p.semantic("%s %s cannot be read", v.Type, v.Name())
	}
	if v.Array && !op.Indexed {
		return p.semantic("array %s must be indexed", v.Name())
	}
	if p.slotKind() == slotScalar && op.Swizzle.Len() == 0 && scalarConstant(v) {
		op.Swizzle[0] = ir.CompX
	}
	if p.slotKind() == slotScalar && op.Swizzle.Len() != 1 {
		return p.semantic("%s requires a scalar source", inst.Mnemonic())
	}
	if inst.Op.Info().ExtSwizzle && op.Swizzle.Len() != 0 {
		return p.semantic("the SWZ source cannot carry a swizzle")
	}
	return true
}

func (p *Parser) textureTarget(tok Token) bool {
	if tok.Kind != TokenIdent {
		return p.unexpected(tok, "a texture target")
	}
	target, ok := ir.LookupTarget(tok.Lexeme)
	if !ok {
		p.fail(KindGrammar, tok.Offset, "unknown texture target %q", tok.Lexeme)
		return false
	}
	unit := p.stmt.unit
	key := samplerKey(unit)
	sampler, exists := p.prog.Symbols.LookupKey(key)
	if exists && sampler.Target != target {
		p.fail(KindSemantic, tok.Offset, "texture unit %d is already sampled as %s", unit, sampler.Target)
		return false
	}
	if !exists {
		sampler = &ir.Variable{
			Type:   ir.VarSampler,
			State:  ir.VarImplicit,
			Unit:   unit,
			Target: target,
			Key:    key,
			Offset: tok.Offset,
		}
		p.prog.Symbols.Add(sampler)
	}
	p.stmt.operand.Var = sampler
	p.stmt.operand.Target = target
	p.state = StateTerminator
	return false
}

// scalarConstant reports whether v is an inline constant with four equal
// components, which scalar operations accept without a swizzle.
func scalarConstant(v *ir.Variable) bool {
	if v.Type != ir.VarConst {
		return false
	}
	lit := v.Init[0].Literal
	return lit[0] == lit[1] && lit[1] == lit[2] && lit[2] == lit[3]
}

func samplerKey(unit int) string {
	return "texture[" + strconv.Itoa(unit) + "]"
}

func (p *Parser) extSwizzle(tok Token) bool {
	var c ir.Component
	switch {
	case tok.Kind == TokenInteger && tok.Value == 0:
		c = ir.CompZero
	case tok.Kind == TokenInteger && tok.Value == 1:
		c = ir.CompOne
	case tok.Kind == TokenIdent && len(tok.Lexeme) == 1:
		var ok bool
		if c, ok = ir.ComponentFromLetter(tok.Lexeme[0], p.prog.Stage == ir.StageFragment); !ok {
			return p.unexpected(tok, "an extended swizzle component")
		}
	default:
		return p.unexpected(tok, "an extended swizzle component")
	}
	op := &p.stmt.inst.Operands[1]
	op.Swizzle[p.stmt.extComp] = c
	op.Negate[p.stmt.extComp] = p.stmt.extNeg
	p.stmt.extComp++
	p.state = StateExtSwizzleNext
	return false
}

func (p *Parser) finishInstruction() {
	inst := p.stmt.inst
	inst.NumOperands = len(p.stmt.slots)
	p.prog.Append(inst)
	if p.trace {
		p.logger.Debug("arb instruction",
			slog.String("op", inst.Mnemonic()),
			slog.Int("operands", inst.NumOperands),
			slog.Int("offset", inst.Offset))
	}
}
