package lox

func (exec *Execution) evalUnaryExpr(e *UnaryExpr, env *Env) (Value, error) {
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}

	switch e.Operator {
	case tokenBang:
		return NewBool(!right.Truthy()), nil
	case tokenMinus:
		if right.Kind() != KindNumber {
			return NewNil(), exec.errorAt(e.Pos(), "operand of - must be a number")
		}
		return NewNumber(-right.Number()), nil
	default:
		return NewNil(), exec.errorAt(e.Pos(), "unsupported unary operator %s", e.Operator)
	}
}

func (exec *Execution) evalBinaryExpr(e *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(e.Left, env)
	if err != nil {
		return NewNil(), err
	}
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}

	switch e.Operator {
	case tokenEQ:
		return NewBool(left.Equal(right)), nil
	case tokenNotEQ:
		return NewBool(!left.Equal(right)), nil
	case tokenPlus:
		if left.Kind() == KindNumber && right.Kind() == KindNumber {
			return NewNumber(left.Number() + right.Number()), nil
		}
		if left.Kind() == KindString && right.Kind() == KindString {
			return NewString(left.String() + right.String()), nil
		}
		return NewNil(), exec.errorAt(e.Pos(), "operands of + must be two numbers or two strings")
	case tokenMinus, tokenAsterisk, tokenSlash, tokenLT, tokenLTE, tokenGT, tokenGTE:
		if left.Kind() != KindNumber || right.Kind() != KindNumber {
			return NewNil(), exec.errorAt(e.Pos(), "operands of %s must be numbers", e.Operator)
		}
		return exec.evalNumericOp(e.Operator, left.Number(), right.Number(), e.Pos())
	default:
		return NewNil(), exec.errorAt(e.Pos(), "unsupported binary operator %s", e.Operator)
	}
}

func (exec *Execution) evalNumericOp(op TokenType, left, right float64, pos Position) (Value, error) {
	switch op {
	case tokenMinus:
		return NewNumber(left - right), nil
	case tokenAsterisk:
		return NewNumber(left * right), nil
	case tokenSlash:
		return NewNumber(left / right), nil
	case tokenLT:
		return NewBool(left < right), nil
	case tokenLTE:
		return NewBool(left <= right), nil
	case tokenGT:
		return NewBool(left > right), nil
	case tokenGTE:
		return NewBool(left >= right), nil
	default:
		return NewNil(), exec.errorAt(pos, "unsupported binary operator %s", op)
	}
}
