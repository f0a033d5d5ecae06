package executor

import (
	"fmt"
	"go/ast"
	"go/token"
	gotypes "go/types"
	"strconv"

	"go.uber.org/zap"

	"github.com/kakkky/mything/errs"
	"github.com/kakkky/mything/mything"
	"github.com/kakkky/mything/types"
)

func (e *Executor) declare(name *ast.Ident, rhs ast.Expr) error {
	v, err := e.evalExpr(rhs)
	if err != nil {
		return err
	}
	if v.kind != valueKindThing {
		return errs.NewBadInputError(fmt.Sprintf(
			"cannot use %s (%s) as *mything.MyThing value in assignment to %s",
			exprString(rhs), v.kind, name.Name,
		))
	}
	e.registerThing(name, v.thing)
	return nil
}

func (e *Executor) registerThing(name *ast.Ident, thing *mything.MyThing) {
	entry := e.registry.Register(declName(name), thing)
	e.logger.Debug("registered instance",
		zap.String("name", name.Name),
		zap.Stringer("handle", entry.Handle),
		zap.Int("value", thing.Value()),
	)
}

// evalExpr は式を評価する
func (e *Executor) evalExpr(expr ast.Expr) (value, error) {
	switch exprV := expr.(type) {
	case *ast.BasicLit:
		if exprV.Kind != token.INT {
			return value{}, errs.NewBadInputError(fmt.Sprintf("unsupported literal %s", exprV.Value))
		}
		n, err := parseIntLit(exprV.Value)
		if err != nil {
			return value{}, err
		}
		return intValue(n), nil
	case *ast.ParenExpr:
		return e.evalExpr(exprV.X)
	case *ast.UnaryExpr:
		return e.evalUnaryExpr(exprV)
	case *ast.BinaryExpr:
		return e.evalBinaryExpr(exprV)
	case *ast.Ident:
		entry, ok := e.registry.Lookup(declName(exprV))
		if !ok {
			return value{}, errs.NewBadInputError("undefined: " + exprV.Name)
		}
		return thingValue(entry.Thing), nil
	case *ast.SelectorExpr:
		return e.evalSelectorExpr(exprV)
	case *ast.CallExpr:
		return e.evalCallExpr(exprV)
	default:
		return value{}, errs.NewBadInputError("unsupported expression " + exprString(expr))
	}
}

// evalInt は式を評価し、int以外であればエラーとする
func (e *Executor) evalInt(expr ast.Expr) (int, error) {
	v, err := e.evalExpr(expr)
	if err != nil {
		return 0, err
	}
	if v.kind != valueKindInt {
		return 0, errs.NewBadInputError(fmt.Sprintf("cannot use %s (%s) as int value", exprString(expr), v.kind))
	}
	return v.i, nil
}

func (e *Executor) evalThing(expr ast.Expr) (*mything.MyThing, error) {
	v, err := e.evalExpr(expr)
	if err != nil {
		return nil, err
	}
	if v.kind != valueKindThing {
		return nil, errs.NewBadInputError(fmt.Sprintf("%s (%s) is not a *mything.MyThing", exprString(expr), v.kind))
	}
	return v.thing, nil
}

func (e *Executor) evalUnaryExpr(expr *ast.UnaryExpr) (value, error) {
	if expr.Op != token.ADD && expr.Op != token.SUB {
		return value{}, errs.NewBadInputError(fmt.Sprintf("unsupported operator %s", expr.Op))
	}
	// -9223372036854775808 のような最小値はリテラルのままでは収まらないので符号ごとパースする
	if lit, ok := expr.X.(*ast.BasicLit); ok && lit.Kind == token.INT && expr.Op == token.SUB {
		n, err := parseIntLit("-" + lit.Value)
		if err != nil {
			return value{}, err
		}
		return intValue(n), nil
	}
	n, err := e.evalInt(expr.X)
	if err != nil {
		return value{}, err
	}
	if expr.Op == token.SUB {
		n = -n
	}
	return intValue(n), nil
}

func (e *Executor) evalBinaryExpr(expr *ast.BinaryExpr) (value, error) {
	x, err := e.evalInt(expr.X)
	if err != nil {
		return value{}, err
	}
	y, err := e.evalInt(expr.Y)
	if err != nil {
		return value{}, err
	}
	switch expr.Op {
	case token.ADD:
		return intValue(x + y), nil
	case token.SUB:
		return intValue(x - y), nil
	case token.MUL:
		return intValue(x * y), nil
	case token.QUO, token.REM:
		if y == 0 {
			return value{}, errs.NewBadInputError("invalid operation: division by zero")
		}
		if expr.Op == token.QUO {
			return intValue(x / y), nil
		}
		return intValue(x % y), nil
	default:
		return value{}, errs.NewBadInputError(fmt.Sprintf("unsupported operator %s", expr.Op))
	}
}

func (e *Executor) evalSelectorExpr(expr *ast.SelectorExpr) (value, error) {
	if e.isPkgRef(expr.X) {
		switch expr.Sel.Name {
		case "VERSION":
			return stringValue(mything.VERSION), nil
		case string(types.FuncNew), string(types.FuncVersion):
			return value{}, errs.NewBadInputError(fmt.Sprintf("%s is a function and must be called", exprString(expr)))
		default:
			return value{}, errs.NewBadInputError("undefined: " + exprString(expr))
		}
	}

	thing, err := e.evalThing(expr.X)
	if err != nil {
		return value{}, err
	}
	switch expr.Sel.Name {
	case string(types.PropertyValue):
		return intValue(thing.Value()), nil
	case string(types.MethodIncrement), string(types.MethodSetValue), string(types.MethodString):
		return value{}, errs.NewBadInputError(fmt.Sprintf("%s is a method and must be called", exprString(expr)))
	default:
		return value{}, errs.NewBadInputError(fmt.Sprintf(
			"%s undefined (type *mything.MyThing has no field or method %s)", exprString(expr), expr.Sel.Name,
		))
	}
}

func (e *Executor) evalCallExpr(expr *ast.CallExpr) (value, error) {
	sel, ok := expr.Fun.(*ast.SelectorExpr)
	if !ok {
		if ident, ok := expr.Fun.(*ast.Ident); ok {
			return value{}, errs.NewBadInputError("undefined: " + ident.Name)
		}
		return value{}, errs.NewBadInputError("unsupported call " + exprString(expr))
	}
	if expr.Ellipsis.IsValid() {
		return value{}, errs.NewBadInputError("variadic calls are not supported")
	}

	if e.isPkgRef(sel.X) {
		return e.evalPkgFuncCall(sel, expr.Args)
	}

	thing, err := e.evalThing(sel.X)
	if err != nil {
		return value{}, err
	}
	return e.evalMethodCall(thing, sel, expr.Args)
}

func (e *Executor) evalPkgFuncCall(sel *ast.SelectorExpr, args []ast.Expr) (value, error) {
	switch types.FuncName(sel.Sel.Name) {
	case types.FuncNew:
		// 引数省略時はゼロ値と同じく0で生成する
		if len(args) > 1 {
			return value{}, tooManyArgs(sel)
		}
		initial := 0
		if len(args) == 1 {
			n, err := e.evalInt(args[0])
			if err != nil {
				return value{}, err
			}
			initial = n
		}
		return thingValue(mything.New(initial)), nil
	case types.FuncVersion:
		if len(args) > 0 {
			return value{}, tooManyArgs(sel)
		}
		return stringValue(mything.Version()), nil
	default:
		return value{}, errs.NewBadInputError("undefined: " + exprString(sel))
	}
}

func (e *Executor) evalMethodCall(thing *mything.MyThing, sel *ast.SelectorExpr, args []ast.Expr) (value, error) {
	switch types.MethodName(sel.Sel.Name) {
	case types.MethodValue:
		if len(args) > 0 {
			return value{}, tooManyArgs(sel)
		}
		return intValue(thing.Value()), nil
	case types.MethodString:
		if len(args) > 0 {
			return value{}, tooManyArgs(sel)
		}
		return stringValue(thing.String()), nil
	case types.MethodSetValue, types.MethodIncrement:
		if len(args) == 0 {
			return value{}, errs.NewBadInputError("not enough arguments in call to " + exprString(sel))
		}
		if len(args) > 1 {
			return value{}, tooManyArgs(sel)
		}
		n, err := e.evalInt(args[0])
		if err != nil {
			return value{}, err
		}
		if types.MethodName(sel.Sel.Name) == types.MethodSetValue {
			thing.SetValue(n)
			return value{}, nil
		}
		return intValue(thing.Increment(n)), nil
	default:
		return value{}, errs.NewBadInputError(fmt.Sprintf(
			"%s undefined (type *mything.MyThing has no field or method %s)", exprString(sel), sel.Sel.Name,
		))
	}
}

// evalValueProperty は t.Value の形の式を評価し、代入対象のインスタンスを返す
func (e *Executor) evalValueProperty(expr ast.Expr) (*mything.MyThing, error) {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != string(types.PropertyValue) || e.isPkgRef(sel.X) {
		return nil, errs.NewBadInputError("cannot assign to " + exprString(expr))
	}
	return e.evalThing(sel.X)
}

// isPkgRef は式がライブラリのパッケージ名を指しているかどうかを判定する
// 同名の変数が宣言されている場合は変数を優先する
func (e *Executor) isPkgRef(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return false
	}
	return types.PkgName(ident.Name) == types.LibPkgName && !e.registry.IsRegistered(declName(ident))
}

func (e *Executor) isThingType(expr ast.Expr) bool {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	sel, ok := expr.(*ast.SelectorExpr)
	return ok && e.isPkgRef(sel.X) && sel.Sel.Name == "MyThing"
}

func parseIntLit(lit string) (int, error) {
	n, err := strconv.ParseInt(lit, 0, strconv.IntSize)
	if err != nil {
		return 0, errs.NewBadInputError(fmt.Sprintf("cannot use %s as int value", lit)).Wrap(err)
	}
	return int(n), nil
}

func tooManyArgs(sel *ast.SelectorExpr) error {
	return errs.NewBadInputError("too many arguments in call to " + exprString(sel))
}

func declName(ident *ast.Ident) types.DeclName {
	return types.DeclName(ident.Name)
}

func exprString(expr ast.Expr) string {
	return gotypes.ExprString(expr)
}
