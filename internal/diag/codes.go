package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Семантические (связывание имён, области видимости)
	SemaInfo               Code = 3000
	SemaUndefinedIdent     Code = 3001
	SemaDuplicateSymbol    Code = 3002
	SemaAssignImmutable    Code = 3003
	SemaReturnOutsideFn    Code = 3004
	SemaScopeMismatch      Code = 3005
	SemaUnusedSymbol       Code = 3006
	SemaUnreachableCode    Code = 3007
	SemaUnknownExtension   Code = 3008
	SemaExtensionExpansion Code = 3009

	// Типовые
	TypeInfo              Code = 4000
	TypeMismatch          Code = 4001
	TypeArrayElement      Code = 4002
	TypeUndefinedBinding  Code = 4003
	TypeBinaryOperands    Code = 4004
	TypeUnaryOperand      Code = 4005
	TypeConditionNotBool  Code = 4006
	TypeBranchMismatch    Code = 4007
	TypeUnresolvedDecl    Code = 4008
	TypeParamAnnotation   Code = 4009
	TypeReturnMismatch    Code = 4010
	TypeNotCallable       Code = 4011
	TypeArgCount          Code = 4012
	TypeArgMismatch       Code = 4013
	TypeUnknownTypeName   Code = 4014
	TypeReturnOutsideFn   Code = 4015
	TypeDuplicateTypeName Code = 4016

	// Внутренние (ошибки предыдущих проходов)
	InternalInfo        Code = 9000
	InternalMissingNode Code = 9001
	InternalScopeState  Code = 9002
	InternalBadInput    Code = 9003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	SemaInfo:               "Semantic information",
	SemaUndefinedIdent:     "Undefined identifier",
	SemaDuplicateSymbol:    "Duplicate declaration in scope",
	SemaAssignImmutable:    "Assignment to immutable binding",
	SemaReturnOutsideFn:    "Return outside of function",
	SemaScopeMismatch:      "Scope stack mismatch",
	SemaUnusedSymbol:       "Unused declaration",
	SemaUnreachableCode:    "Unreachable code",
	SemaUnknownExtension:   "Unknown embedded block extension",
	SemaExtensionExpansion: "Embedded block expansion failed",
	TypeInfo:               "Type information",
	TypeMismatch:           "Type mismatch",
	TypeArrayElement:       "Array element type mismatch",
	TypeUndefinedBinding:   "Undefined binding",
	TypeBinaryOperands:     "Invalid operand types for binary operator",
	TypeUnaryOperand:       "Invalid operand type for unary operator",
	TypeConditionNotBool:   "Condition must be bool",
	TypeBranchMismatch:     "Branch type mismatch",
	TypeUnresolvedDecl:     "Cannot infer declaration type",
	TypeParamAnnotation:    "Missing parameter type annotation",
	TypeReturnMismatch:     "Return type mismatch",
	TypeNotCallable:        "Callee is not a function",
	TypeArgCount:           "Wrong number of arguments",
	TypeArgMismatch:        "Argument type mismatch",
	TypeUnknownTypeName:    "Unknown type name",
	TypeReturnOutsideFn:    "Return outside of function",
	TypeDuplicateTypeName:  "Duplicate type name",
	InternalInfo:           "Internal information",
	InternalMissingNode:    "Missing node",
	InternalScopeState:     "Corrupted scope state",
	InternalBadInput:       "Malformed program",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind maps a code to the error class of its range. Unknown codes are internal.
func (c Code) Kind() ErrorKind {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return KindSemantic
	case ic >= 4000 && ic < 5000:
		return KindType
	}
	return KindInternal
}
