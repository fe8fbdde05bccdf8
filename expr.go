package tank

import "strings"

// Expr is a SQL expression node. Rendering goes through the writer so each
// dialect can override spelling; Precedence drives parenthesization.
type Expr interface {
	WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder)
	Precedence(w SqlWriter) int
}

// BinaryOp enumerates binary operator kinds.
type BinaryOp uint8

const (
	OpIndexing BinaryOp = iota
	OpCast
	OpMultiplication
	OpDivision
	OpRemainder
	OpAddition
	OpSubtraction
	OpShiftLeft
	OpShiftRight
	OpBitwiseAnd
	OpBitwiseOr
	OpIs
	OpIsNot
	OpLike
	OpNotLike
	OpRegexp
	OpNotRegexp
	OpGlob
	OpNotGlob
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpAnd
	OpOr
	OpAlias
)

// UnaryOp enumerates unary operator kinds.
type UnaryOp uint8

const (
	OpNegative UnaryOp = iota
	OpNot
)

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	Op  BinaryOp
	Lhs Expr
	Rhs Expr
}

func (e *BinaryExpr) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteExpressionBinaryOp(ctx, out, e)
}

func (e *BinaryExpr) Precedence(w SqlWriter) int {
	return w.BinaryOpPrecedence(e.Op)
}

// UnaryExpr applies a unary operator to one operand.
type UnaryExpr struct {
	Op  UnaryOp
	Arg Expr
}

func (e *UnaryExpr) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteExpressionUnaryOp(ctx, out, e)
}

func (e *UnaryExpr) Precedence(w SqlWriter) int {
	return w.UnaryOpPrecedence(e.Op)
}

// Order is a sort direction.
type Order uint8

const (
	ASC Order = iota
	DESC
)

// Ordered attaches a sort direction to an expression. The direction is
// written only inside ORDER BY; elsewhere the wrapper is transparent.
type Ordered struct {
	Expr  Expr
	Order Order
}

func (e *Ordered) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteExpressionOrdered(ctx, out, e)
}

func (e *Ordered) Precedence(w SqlWriter) int {
	return e.Expr.Precedence(w)
}

type operandKind uint8

const (
	opLitBool operandKind = iota
	opLitFloat
	opLitIdent
	opLitField
	opLitInt
	opLitStr
	opLitArray
	opNull
	opType
	opVariable
	opCall
	opAsterisk
	opQuestionMark
)

// Operand is a leaf expression: a literal, an identifier, a bound value or
// a function call. Leaves bind tighter than any operator and are never
// parenthesized.
type Operand struct {
	kind  operandKind
	b     bool
	f     float64
	i     int64
	s     string
	path  []string
	items []Expr
	val   Value
}

func LitBool(v bool) *Operand    { return &Operand{kind: opLitBool, b: v} }
func LitFloat(v float64) *Operand { return &Operand{kind: opLitFloat, f: v} }
func LitInt(v int64) *Operand    { return &Operand{kind: opLitInt, i: v} }
func LitStr(v string) *Operand   { return &Operand{kind: opLitStr, s: v} }

// LitIdent is a raw identifier written verbatim, unquoted.
func LitIdent(v string) *Operand { return &Operand{kind: opLitIdent, s: v} }

// LitField is a dotted path such as table.column, written verbatim.
func LitField(path ...string) *Operand { return &Operand{kind: opLitField, path: path} }

// LitArray is a bracketed literal list of expressions.
func LitArray(items ...Expr) *Operand { return &Operand{kind: opLitArray, items: items} }

// LitNull is the NULL literal.
func LitNull() *Operand { return &Operand{kind: opNull} }

// TypeOperand renders the column type of v, for CAST targets.
func TypeOperand(v Value) *Operand { return &Operand{kind: opType, val: v} }

// Variable renders v as an inline SQL literal.
func Variable(v Value) *Operand { return &Operand{kind: opVariable, val: v} }

// Call is a function invocation.
func Call(fn string, args ...Expr) *Operand {
	return &Operand{kind: opCall, s: fn, items: args}
}

// Asterisk is the * projection.
func Asterisk() *Operand { return &Operand{kind: opAsterisk} }

// QuestionMark is a positional parameter placeholder. Dialects that number
// parameters rewrite it using the context counter.
func QuestionMark() *Operand { return &Operand{kind: opQuestionMark} }

func (o *Operand) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteExpressionOperand(ctx, out, o)
}

func (o *Operand) Precedence(SqlWriter) int { return 1_000_000 }

func binary(op BinaryOp, lhs, rhs Expr) Expr {
	return &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}
}

func isNullOperand(e Expr) bool {
	o, ok := e.(*Operand)
	return ok && (o.kind == opNull || (o.kind == opVariable && o.val.IsNull()))
}

// patternCast recognizes a cast to one of the pseudo-types LIKE, REGEXP or
// GLOB. The cast argument is the pattern.
func patternCast(e Expr) (pattern Expr, op BinaryOp, ok bool) {
	b, isBin := e.(*BinaryExpr)
	if !isBin || b.Op != OpCast {
		return nil, 0, false
	}
	ident, isOperand := b.Rhs.(*Operand)
	if !isOperand || ident.kind != opLitIdent {
		return nil, 0, false
	}
	switch ident.s {
	case "LIKE":
		return b.Lhs, OpLike, true
	case "REGEXP":
		return b.Lhs, OpRegexp, true
	case "GLOB":
		return b.Lhs, OpGlob, true
	}
	return nil, 0, false
}

func negatePattern(op BinaryOp) BinaryOp {
	switch op {
	case OpLike:
		return OpNotLike
	case OpRegexp:
		return OpNotRegexp
	default:
		return OpNotGlob
	}
}

// Eq builds lhs = rhs, normalized to IS NULL when rhs is the NULL literal.
// Comparing against a cast to the pseudo-types LIKE, REGEXP or GLOB turns
// into the matching pattern operator instead.
func Eq(lhs, rhs Expr) Expr {
	if isNullOperand(rhs) {
		return binary(OpIs, lhs, LitNull())
	}
	if pattern, op, ok := patternCast(rhs); ok {
		return binary(op, lhs, pattern)
	}
	if pattern, op, ok := patternCast(lhs); ok {
		return binary(op, rhs, pattern)
	}
	return binary(OpEqual, lhs, rhs)
}

// Ne builds lhs != rhs, normalized to IS NOT NULL when rhs is the NULL
// literal and to the negated pattern operator for pseudo-type casts, like Eq.
func Ne(lhs, rhs Expr) Expr {
	if isNullOperand(rhs) {
		return binary(OpIsNot, lhs, LitNull())
	}
	if pattern, op, ok := patternCast(rhs); ok {
		return binary(negatePattern(op), lhs, pattern)
	}
	if pattern, op, ok := patternCast(lhs); ok {
		return binary(negatePattern(op), rhs, pattern)
	}
	return binary(OpNotEqual, lhs, rhs)
}

func Lt(lhs, rhs Expr) Expr { return binary(OpLess, lhs, rhs) }
func Le(lhs, rhs Expr) Expr { return binary(OpLessEqual, lhs, rhs) }
func Gt(lhs, rhs Expr) Expr { return binary(OpGreater, lhs, rhs) }
func Ge(lhs, rhs Expr) Expr { return binary(OpGreaterEqual, lhs, rhs) }

// And folds the conditions left-associatively with AND. nil conditions are
// skipped; And() with nothing left returns nil.
func And(conds ...Expr) Expr {
	var acc Expr
	for _, c := range conds {
		if c == nil {
			continue
		}
		if acc == nil {
			acc = c
		} else {
			acc = binary(OpAnd, acc, c)
		}
	}
	return acc
}

// Or folds the conditions left-associatively with OR.
func Or(conds ...Expr) Expr {
	var acc Expr
	for _, c := range conds {
		if c == nil {
			continue
		}
		if acc == nil {
			acc = c
		} else {
			acc = binary(OpOr, acc, c)
		}
	}
	return acc
}

func Not(arg Expr) Expr { return &UnaryExpr{Op: OpNot, Arg: arg} }
func Neg(arg Expr) Expr { return &UnaryExpr{Op: OpNegative, Arg: arg} }

func Add(lhs, rhs Expr) Expr { return binary(OpAddition, lhs, rhs) }
func Sub(lhs, rhs Expr) Expr { return binary(OpSubtraction, lhs, rhs) }
func Mul(lhs, rhs Expr) Expr { return binary(OpMultiplication, lhs, rhs) }
func Div(lhs, rhs Expr) Expr { return binary(OpDivision, lhs, rhs) }
func Rem(lhs, rhs Expr) Expr { return binary(OpRemainder, lhs, rhs) }

func ShiftLeft(lhs, rhs Expr) Expr  { return binary(OpShiftLeft, lhs, rhs) }
func ShiftRight(lhs, rhs Expr) Expr { return binary(OpShiftRight, lhs, rhs) }
func BitAnd(lhs, rhs Expr) Expr     { return binary(OpBitwiseAnd, lhs, rhs) }
func BitOr(lhs, rhs Expr) Expr      { return binary(OpBitwiseOr, lhs, rhs) }

func Like(lhs, rhs Expr) Expr      { return binary(OpLike, lhs, rhs) }
func NotLike(lhs, rhs Expr) Expr   { return binary(OpNotLike, lhs, rhs) }
func Regexp(lhs, rhs Expr) Expr    { return binary(OpRegexp, lhs, rhs) }
func NotRegexp(lhs, rhs Expr) Expr { return binary(OpNotRegexp, lhs, rhs) }
func Glob(lhs, rhs Expr) Expr      { return binary(OpGlob, lhs, rhs) }
func NotGlob(lhs, rhs Expr) Expr   { return binary(OpNotGlob, lhs, rhs) }

func Is(lhs, rhs Expr) Expr    { return binary(OpIs, lhs, rhs) }
func IsNot(lhs, rhs Expr) Expr { return binary(OpIsNot, lhs, rhs) }

// Cast wraps arg in CAST(arg AS type).
func Cast(arg Expr, typ Value) Expr {
	return binary(OpCast, arg, TypeOperand(typ))
}

// CastIdent wraps arg in CAST(arg AS ident) with a verbatim type name. With
// the pseudo-types LIKE, REGEXP and GLOB it marks arg as a pattern, which
// Eq and Ne rewrite into the corresponding pattern operator.
func CastIdent(arg Expr, ident string) Expr {
	return binary(OpCast, arg, LitIdent(ident))
}

// Alias names an expression with AS. Inside ORDER BY only the expression
// is written.
func Alias(arg Expr, name string) Expr {
	return binary(OpAlias, arg, LitIdent(name))
}

// Index subscripts an expression, arg[idx].
func Index(arg, idx Expr) Expr { return binary(OpIndexing, arg, idx) }

// Asc marks an expression ascending for ORDER BY.
func Asc(e Expr) Expr { return &Ordered{Expr: e, Order: ASC} }

// Desc marks an expression descending for ORDER BY.
func Desc(e Expr) Expr { return &Ordered{Expr: e, Order: DESC} }
