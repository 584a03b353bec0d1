package ast

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	// Арифметические

	// BinaryAdd represents the addition operator (+). Also concatenates strings.
	BinaryAdd BinaryOp = iota
	// BinarySub represents the subtraction operator (-).
	BinarySub
	// BinaryMul represents the multiplication operator (*).
	BinaryMul
	// BinaryDiv represents the division operator (/).
	BinaryDiv
	// BinaryMod represents the modulo operator (%).
	BinaryMod

	// Сравнения

	BinaryEq
	BinaryNe
	BinaryLt
	BinaryLe
	BinaryGt
	BinaryGe

	// Логические

	BinaryAnd
	BinaryOr
)

func (op BinaryOp) String() string {
	switch op {
	case BinaryAdd:
		return "+"
	case BinarySub:
		return "-"
	case BinaryMul:
		return "*"
	case BinaryDiv:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryEq:
		return "=="
	case BinaryNe:
		return "!="
	case BinaryLt:
		return "<"
	case BinaryLe:
		return "<="
	case BinaryGt:
		return ">"
	case BinaryGe:
		return ">="
	case BinaryAnd:
		return "&&"
	case BinaryOr:
		return "||"
	}
	return "?"
}

func (op BinaryOp) IsArithmetic() bool { return op <= BinaryMod }

func (op BinaryOp) IsComparison() bool { return op >= BinaryEq && op <= BinaryGe }

func (op BinaryOp) IsLogical() bool { return op == BinaryAnd || op == BinaryOr }

// UnaryOp enumerates unary operator kinds.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -x
	UnaryNot                // !x
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	}
	return "?"
}
