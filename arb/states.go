package arb

// State is the position of the parser within the program grammar.
type State uint8

const (
	StateHeader State = iota
	StateLineStart
	StateOption
	StateTerminator

	// TEMP and ADDRESS lists
	StateTempName
	StateTempNext

	// ATTRIB, OUTPUT, PARAM and ALIAS declarations
	StateDeclName
	StateParamShape
	StateArraySize
	StateArraySizeEnd
	StateDeclEquals
	StateAliasTarget
	StateArrayOpen
	StateArrayNext

	// Values: constants, vectors and binding paths
	StateValue
	StateNumber
	StateVectorItem
	StateVectorNumber
	StateVectorNext
	StateBinding
	StateBindingMember
	StateBindingIndex
	StateBindingIndexEnd
	StateBindingRangeEnd
	StateBindingRangeClose

	// Instruction operands
	StateOperand
	StateOperandValue
	StateOperandSuffix
	StateOperandIndex
	StateOperandIndexEnd
	StateAddressDot
	StateAddressComp
	StateAddressOffset
	StateAddressOffsetValue
	StateOperandSwizzle
	StateOperandEnd
	StateTextureUnit
	StateTextureIndex
	StateTextureIndexEnd
	StateTextureComma
	StateTextureTarget
	StateExtSwizzle
	StateExtSwizzleValue
	StateExtSwizzleNext

	StateDone
	StateError
)

var stateNames = [...]string{
	StateHeader:             "header",
	StateLineStart:          "line-start",
	StateOption:             "option",
	StateTerminator:         "terminator",
	StateTempName:           "temp-name",
	StateTempNext:           "temp-next",
	StateDeclName:           "decl-name",
	StateParamShape:         "param-shape",
	StateArraySize:          "array-size",
	StateArraySizeEnd:       "array-size-end",
	StateDeclEquals:         "decl-equals",
	StateAliasTarget:        "alias-target",
	StateArrayOpen:          "array-open",
	StateArrayNext:          "array-next",
	StateValue:              "value",
	StateNumber:             "number",
	StateVectorItem:         "vector-item",
	StateVectorNumber:       "vector-number",
	StateVectorNext:         "vector-next",
	StateBinding:            "binding",
	StateBindingMember:      "binding-member",
	StateBindingIndex:       "binding-index",
	StateBindingIndexEnd:    "binding-index-end",
	StateBindingRangeEnd:    "binding-range-end",
	StateBindingRangeClose:  "binding-range-close",
	StateOperand:            "operand",
	StateOperandValue:       "operand-value",
	StateOperandSuffix:      "operand-suffix",
	StateOperandIndex:       "operand-index",
	StateOperandIndexEnd:    "operand-index-end",
	StateAddressDot:         "address-dot",
	StateAddressComp:        "address-comp",
	StateAddressOffset:      "address-offset",
	StateAddressOffsetValue: "address-offset-value",
	StateOperandSwizzle:     "operand-swizzle",
	StateOperandEnd:         "operand-end",
	StateTextureUnit:        "texture-unit",
	StateTextureIndex:       "texture-index",
	StateTextureIndexEnd:    "texture-index-end",
	StateTextureComma:       "texture-comma",
	StateTextureTarget:      "texture-target",
	StateExtSwizzle:         "ext-swizzle",
	StateExtSwizzleValue:    "ext-swizzle-value",
	StateExtSwizzleNext:     "ext-swizzle-next",
	StateDone:               "done",
	StateError:              "error",
}

// String returns the state name used in traces.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Finished reports whether the state is terminal.
func (s State) Finished() bool {
	return s == StateDone || s == StateError
}
