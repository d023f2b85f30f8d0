package interpreter

import (
	"fmt"

	"quill/ast"
	"quill/lexer"
	"quill/object"
)

// DefaultMaxDepth bounds nested Eval calls so runaway recursion in user code
// surfaces as an error value instead of exhausting the Go stack.
const DefaultMaxDepth = 10000

// Interpreter walks an AST against an environment chain. An Interpreter is
// not safe for concurrent use, but independent instances share no state.
type Interpreter struct {
	builtins object.Builtins
	maxDepth int
	depth    int
}

type Option func(*Interpreter)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxDepth = n
		}
	}
}

func New(builtins object.Builtins, opts ...Option) *Interpreter {
	i := &Interpreter{
		builtins: builtins,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

// isSignal reports values that stop the enclosing block. A signal produced
// while evaluating a subexpression is handed back unchanged and never used
// as an operand or stored.
func isSignal(obj object.Object) bool {
	switch obj.(type) {
	case *object.Error, *object.ReturnValue, *object.Break:
		return true
	}
	return false
}

func isTruthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value()
	case *object.Null:
		return false
	default:
		return true
	}
}

func (i *Interpreter) Eval(node ast.Node, env *object.Environment) object.Object {
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.maxDepth {
		return newError("recursion limit exceeded")
	}

	switch nd := node.(type) {
	case *ast.Program:
		return i.evalProgram(nd.Statements, env)

	case *ast.ExpressionStatement:
		return i.Eval(nd.Expression, env)

	case *ast.LetStatement:
		val := i.Eval(nd.Value, env)
		if isSignal(val) {
			return val
		}
		env.Set(nd.Name.Value, val)
		return object.NULL

	case *ast.ReturnStatement:
		if nd.ReturnValue == nil {
			return &object.ReturnValue{Value: object.NULL}
		}
		val := i.Eval(nd.ReturnValue, env)
		if isSignal(val) {
			return val
		}
		return &object.ReturnValue{Value: val}

	case *ast.BreakStatement:
		return object.BREAK

	case *ast.BlockStatement:
		return i.evalBlockStatement(nd, env)

	case *ast.IntegerLiteral:
		return &object.Integer{
			Value: nd.Value,
		}
	case *ast.StringLiteral:
		return &object.String{
			Value: nd.Value,
		}
	case *ast.BooleanLiteral:
		return object.NativeBool(nd.Value)

	case *ast.Identifier:
		return i.evalIdentifier(nd, env)

	case *ast.PrefixExpression:
		right := i.Eval(nd.Right, env)
		if isSignal(right) {
			return right
		}
		return evalPrefixExpression(nd.Operator, right)

	case *ast.InfixExpression:
		left := i.Eval(nd.Left, env)
		if isSignal(left) {
			return left
		}
		right := i.Eval(nd.Right, env)
		if isSignal(right) {
			return right
		}
		return evalInfixExpression(nd.Operator, left, right)

	case *ast.IfExpression:
		return i.evalIfExpression(nd, env)

	case *ast.WhileExpression:
		return i.evalWhileExpression(nd, env)

	case *ast.FunctionLiteral:
		return &object.Function{Parameters: nd.Parameters, Env: env, Body: nd.Body}

	case *ast.CallExpression:
		return i.evalCallExpression(nd, env)

	case *ast.ArrayLiteral:
		elements, sig := i.evalExpressions(nd.Elements, env)
		if sig != nil {
			return sig
		}
		return &object.Array{Elements: elements}

	case *ast.HashLiteral:
		return i.evalHashLiteral(nd, env)

	case *ast.IndexExpression:
		left := i.Eval(nd.Left, env)
		if isSignal(left) {
			return left
		}
		index := i.Eval(nd.Index, env)
		if isSignal(index) {
			return index
		}
		return evalIndexExpression(left, index)

	case *ast.BadExpression:
		return newError("invalid expression")

	case nil:
		return object.NULL

	default:
		return newError("cannot evaluate %T", nd)
	}
}

func (i *Interpreter) evalProgram(stmts []ast.Statement, env *object.Environment) object.Object {
	var result object.Object = object.NULL
	for _, statement := range stmts {
		result = i.Eval(statement, env)

		switch res := result.(type) {
		case *object.ReturnValue:
			return res.Value
		case *object.Error:
			return res
		case *object.Break:
			return newError("break outside loop")
		}
	}

	return result
}

// evalBlockStatement leaves signals wrapped so they keep propagating outward.
func (i *Interpreter) evalBlockStatement(block *ast.BlockStatement, env *object.Environment) object.Object {
	var result object.Object = object.NULL
	for _, statement := range block.Body {
		result = i.Eval(statement, env)
		if isSignal(result) {
			return result
		}
	}

	return result
}

func (i *Interpreter) evalIdentifier(identifier *ast.Identifier, env *object.Environment) object.Object {
	if obj, ok := env.Get(identifier.Value); ok {
		return obj
	}

	if builtin, ok := i.builtins.Lookup(identifier.Value); ok {
		return builtin
	}

	return newError("identifier not found: %s", identifier.Value)
}

// evalExpressions evaluates left to right and stops at the first signal,
// which is returned on its own.
func (i *Interpreter) evalExpressions(exps []ast.Expression, env *object.Environment) ([]object.Object, object.Object) {
	result := make([]object.Object, 0, len(exps))
	for _, e := range exps {
		evaluated := i.Eval(e, env)
		if isSignal(evaluated) {
			return nil, evaluated
		}
		result = append(result, evaluated)
	}
	return result, nil
}

func (i *Interpreter) evalIfExpression(nd *ast.IfExpression, env *object.Environment) object.Object {
	condition := i.Eval(nd.Condition, env)
	if isSignal(condition) {
		return condition
	}

	if isTruthy(condition) {
		return i.Eval(nd.Consequence, env)
	}
	if nd.Alternative != nil {
		return i.Eval(nd.Alternative, env)
	}
	return object.NULL
}

func (i *Interpreter) evalWhileExpression(nd *ast.WhileExpression, env *object.Environment) object.Object {
	for {
		condition := i.Eval(nd.Condition, env)
		if isSignal(condition) {
			return loopExit(condition)
		}
		if !isTruthy(condition) {
			return object.NULL
		}

		if result := i.Eval(nd.Body, env); isSignal(result) {
			return loopExit(result)
		}
	}
}

// loopExit maps a signal raised inside a loop to the loop's result: break
// ends the loop with null, anything else keeps propagating.
func loopExit(sig object.Object) object.Object {
	if _, ok := sig.(*object.Break); ok {
		return object.NULL
	}
	return sig
}

func (i *Interpreter) evalCallExpression(nd *ast.CallExpression, env *object.Environment) object.Object {
	// builtins win over user bindings at call sites
	if ident, ok := nd.Function.(*ast.Identifier); ok {
		if builtin, ok := i.builtins.Lookup(ident.Value); ok {
			args, sig := i.evalExpressions(nd.Arguments, env)
			if sig != nil {
				return sig
			}
			return callBuiltin(builtin, args)
		}
	}

	function := i.Eval(nd.Function, env)
	if isSignal(function) {
		return function
	}
	args, sig := i.evalExpressions(nd.Arguments, env)
	if sig != nil {
		return sig
	}
	return i.applyFunction(function, args)
}

func (i *Interpreter) applyFunction(fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {
	case *object.Function:
		if len(args) != len(fn.Parameters) {
			return newError("wrong number of arguments: expected %d, got %d",
				len(fn.Parameters), len(args))
		}

		extendedEnv := extendFunctionEnv(fn, args)
		evaluated := i.Eval(fn.Body, extendedEnv)
		if _, ok := evaluated.(*object.Break); ok {
			return newError("break outside loop")
		}
		return unwrapReturnValue(evaluated)

	case *object.Builtin:
		return callBuiltin(fn, args)

	default:
		return newError("not a function: %s", fn.Type())
	}
}

func callBuiltin(fn *object.Builtin, args []object.Object) object.Object {
	if result := fn.Fn(args...); result != nil {
		return result
	}
	return object.NULL
}

func extendFunctionEnv(
	fn *object.Function,
	args []object.Object,
) *object.Environment {
	env := object.NewEnvironment(fn.Env)
	for paramIdx, param := range fn.Parameters {
		env.Set(param.Value, args[paramIdx])
	}
	return env
}

func unwrapReturnValue(obj object.Object) object.Object {
	if returnValue, ok := obj.(*object.ReturnValue); ok {
		return returnValue.Value
	}
	return obj
}

func (i *Interpreter) evalHashLiteral(nd *ast.HashLiteral, env *object.Environment) object.Object {
	hash := object.NewHash()
	for _, pair := range nd.Pairs {
		key := i.Eval(pair.Key, env)
		if isSignal(key) {
			return key
		}
		hashKey, ok := key.(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", key.Type())
		}

		value := i.Eval(pair.Value, env)
		if isSignal(value) {
			return value
		}
		hash.Set(hashKey, value)
	}

	return hash
}

func evalIndexExpression(left, index object.Object) object.Object {
	switch left := left.(type) {
	case *object.Array:
		idx, ok := index.(*object.Integer)
		if !ok {
			return newError("index operator not supported: %s[%s]", left.Type(), index.Type())
		}
		return evalArrayIndexExpression(left, idx.Value)
	case *object.Hash:
		return evalHashIndexExpression(left, index)
	default:
		return newError("index operator not supported: %s", left.Type())
	}
}

// Out of range reads yield null.
func evalArrayIndexExpression(array *object.Array, idx int64) object.Object {
	if idx < 0 || idx >= int64(len(array.Elements)) {
		return object.NULL
	}
	return array.Elements[idx]
}

func evalHashIndexExpression(hash *object.Hash, index object.Object) object.Object {
	key, ok := index.(object.Hashable)
	if !ok {
		return newError("unusable as hash key: %s", index.Type())
	}

	value, ok := hash.Get(key)
	if !ok {
		return object.NULL
	}
	return value
}

func evalPrefixExpression(op string, right object.Object) object.Object {
	switch op {
	case lexer.TokenExclamation:
		return object.NativeBool(!isTruthy(right))
	case lexer.TokenMinus:
		if right, ok := right.(*object.Integer); ok {
			return &object.Integer{Value: -right.Value}
		}
	case lexer.TokenPlus:
		if right, ok := right.(*object.Integer); ok {
			return right
		}
	}

	return newError("unknown operator: %s%s", op, right.Type())
}

func evalInfixExpression(op string, left, right object.Object) object.Object {
	switch {
	case left.Type() == object.INTEGER_OBJ && right.Type() == object.INTEGER_OBJ:
		return evalIntegerInfixExpression(op, left.(*object.Integer), right.(*object.Integer))

	case left.Type() == object.STRING_OBJ && right.Type() == object.STRING_OBJ:
		return evalStringInfixExpression(op, left.(*object.String), right.(*object.String))

	case op == lexer.TokenEquals:
		return object.NativeBool(object.Equal(left, right))
	case op == lexer.TokenNotEquals:
		return object.NativeBool(!object.Equal(left, right))

	case left.Type() != right.Type():
		return newError("type mismatch: %s %s %s",
			left.Type(), op, right.Type())

	default:
		return newError("unknown operator: %s %s %s",
			left.Type(), op, right.Type())
	}
}

func evalIntegerInfixExpression(op string, left, right *object.Integer) object.Object {
	switch op {
	// arithmetic operations
	case lexer.TokenPlus:
		return &object.Integer{Value: left.Value + right.Value}
	case lexer.TokenMinus:
		return &object.Integer{Value: left.Value - right.Value}
	case lexer.TokenMultiply:
		return &object.Integer{Value: left.Value * right.Value}
	case lexer.TokenSlash:
		if right.Value == 0 {
			return newError("division by zero")
		}
		return &object.Integer{Value: left.Value / right.Value}

	// comparison operators
	case lexer.TokenGreater:
		return object.NativeBool(left.Value > right.Value)
	case lexer.TokenGreaterOrEqual:
		return object.NativeBool(left.Value >= right.Value)
	case lexer.TokenLess:
		return object.NativeBool(left.Value < right.Value)
	case lexer.TokenLessOrEqual:
		return object.NativeBool(left.Value <= right.Value)
	case lexer.TokenNotEquals:
		return object.NativeBool(left.Value != right.Value)
	case lexer.TokenEquals:
		return object.NativeBool(left.Value == right.Value)

	default:
		return newError("unknown operator: %s %s %s",
			left.Type(), op, right.Type())
	}
}

func evalStringInfixExpression(op string, left, right *object.String) object.Object {
	switch op {
	case lexer.TokenPlus:
		return &object.String{Value: left.Value + right.Value}
	case lexer.TokenEquals:
		return object.NativeBool(left.Value == right.Value)
	case lexer.TokenNotEquals:
		return object.NativeBool(left.Value != right.Value)
	}

	return newError("type mismatch: %s %s %s",
		left.Type(), op, right.Type())
}
