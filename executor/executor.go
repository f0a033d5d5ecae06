package executor

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"github.com/kakkky/mything/errs"
	"github.com/kakkky/mything/mything"
	"github.com/kakkky/mything/registry"
)

// Executor はREPLセッション内での入力の評価を担う
// go-promptのExecutorインターフェースを実装する
type Executor struct {
	registry *registry.Registry
	out      io.Writer
	logger   *zap.Logger
}

type Option func(*Executor)

// WithOutput は評価結果とエラーの出力先を指定する。デフォルトは標準出力
func WithOutput(w io.Writer) Option {
	return func(e *Executor) {
		e.out = w
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor はExecutorのインスタンスを生成する
func NewExecutor(registry *registry.Registry, opts ...Option) *Executor {
	e := &Executor{
		registry: registry,
		out:      os.Stdout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute は入力された文を評価し、結果を出力する
func (e *Executor) Execute(input string) {
	defer func() {
		if r := recover(); r != nil {
			panicMsg := fmt.Sprintf("%v", r)
			errs.Fprint(e.out, errs.NewInternalError(panicMsg))
			fmt.Fprintln(e.out, string(debug.Stack()))
		}
	}()

	result, err := e.Eval(input)
	if err != nil {
		errs.Fprint(e.out, err)
		return
	}
	if result != "" {
		printResult(e.out, result)
	}
}

// Eval は入力された文を評価し、表示すべき結果を返す
// 値を持たない文（宣言や代入）の場合は空文字を返す
func (e *Executor) Eval(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	stmt, err := parseInput(input)
	if err != nil {
		e.logger.Debug("failed to parse input", zap.String("input", input), zap.Error(err))
		return "", err
	}
	// コメントのみの入力
	if stmt == nil {
		return "", nil
	}

	var result string
	switch stmtV := stmt.(type) {
	case *ast.ExprStmt:
		result, err = e.evalExprStmt(stmtV)
	case *ast.AssignStmt:
		err = e.evalAssignStmt(stmtV)
	case *ast.DeclStmt:
		err = e.evalDeclStmt(stmtV)
	case *ast.IncDecStmt:
		err = e.evalIncDecStmt(stmtV)
	default:
		err = errs.NewBadInputError("unsupported statement type")
	}
	if err != nil {
		e.logger.Debug("failed to evaluate input", zap.String("input", input), zap.Error(err))
		return "", err
	}
	e.logger.Debug("evaluated input", zap.String("input", input), zap.String("result", result))
	return result, nil
}

func (e *Executor) evalExprStmt(stmt *ast.ExprStmt) (string, error) {
	v, err := e.evalExpr(stmt.X)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (e *Executor) evalAssignStmt(stmt *ast.AssignStmt) error {
	if len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
		return errs.NewBadInputError("multiple assignment is not supported")
	}
	lhs, rhs := stmt.Lhs[0], stmt.Rhs[0]

	switch stmt.Tok {
	case token.DEFINE:
		ident, ok := lhs.(*ast.Ident)
		if !ok {
			return errs.NewBadInputError("non-name on left side of :=")
		}
		if ident.Name == "_" || e.registry.IsRegistered(declName(ident)) {
			return errs.NewBadInputError("no new variables on left side of :=")
		}
		return e.declare(ident, rhs)
	case token.ASSIGN:
		return e.assign(lhs, rhs)
	case token.ADD_ASSIGN, token.SUB_ASSIGN:
		thing, err := e.evalValueProperty(lhs)
		if err != nil {
			return err
		}
		delta, err := e.evalInt(rhs)
		if err != nil {
			return err
		}
		if stmt.Tok == token.SUB_ASSIGN {
			delta = -delta
		}
		thing.Increment(delta)
		return nil
	default:
		return errs.NewBadInputError(fmt.Sprintf("unsupported assignment operator %s", stmt.Tok))
	}
}

func (e *Executor) assign(lhs, rhs ast.Expr) error {
	switch lhsV := lhs.(type) {
	case *ast.Ident:
		// ブランク識別子への代入は評価だけ行って捨てる
		if lhsV.Name == "_" {
			_, err := e.evalExpr(rhs)
			return err
		}
		if !e.registry.IsRegistered(declName(lhsV)) {
			return errs.NewBadInputError("undefined: " + lhsV.Name)
		}
		return e.declare(lhsV, rhs)
	case *ast.SelectorExpr:
		thing, err := e.evalValueProperty(lhsV)
		if err != nil {
			return err
		}
		v, err := e.evalInt(rhs)
		if err != nil {
			return err
		}
		thing.SetValue(v)
		return nil
	default:
		return errs.NewBadInputError("cannot assign to " + exprString(lhs))
	}
}

func (e *Executor) evalDeclStmt(stmt *ast.DeclStmt) error {
	genDecl, ok := stmt.Decl.(*ast.GenDecl)
	if !ok || genDecl.Tok != token.VAR {
		return errs.NewBadInputError("only var declarations are supported")
	}
	if len(genDecl.Specs) != 1 {
		return errs.NewBadInputError("grouped declarations are not supported")
	}
	spec := genDecl.Specs[0].(*ast.ValueSpec)
	if len(spec.Names) != 1 || len(spec.Values) > 1 {
		return errs.NewBadInputError("multiple declaration is not supported")
	}
	name := spec.Names[0]
	if e.registry.IsRegistered(declName(name)) {
		return errs.NewBadInputError(name.Name + " redeclared in this block")
	}
	if spec.Type != nil && !e.isThingType(spec.Type) {
		return errs.NewBadInputError("unsupported type " + exprString(spec.Type))
	}
	// 値はコンストラクタが返すポインタなので、非ポインタ型には代入できない
	if _, isPtr := spec.Type.(*ast.StarExpr); spec.Type != nil && !isPtr && len(spec.Values) == 1 {
		return errs.NewBadInputError(fmt.Sprintf(
			"cannot use %s (value of type *mything.MyThing) as %s value in variable declaration",
			exprString(spec.Values[0]), exprString(spec.Type),
		))
	}

	// ブランク識別子は評価だけ行い、登録しない
	if name.Name == "_" {
		if len(spec.Values) == 0 {
			return nil
		}
		_, err := e.evalExpr(spec.Values[0])
		return err
	}

	if len(spec.Values) == 0 {
		// var t mything.MyThing はゼロ値（値0）のインスタンスとなる
		if _, isPtr := spec.Type.(*ast.StarExpr); isPtr || spec.Type == nil {
			return errs.NewBadInputError(fmt.Sprintf("declaration of %s needs an initial value", name.Name))
		}
		e.registerThing(name, &mything.MyThing{})
		return nil
	}
	return e.declare(name, spec.Values[0])
}

func (e *Executor) evalIncDecStmt(stmt *ast.IncDecStmt) error {
	thing, err := e.evalValueProperty(stmt.X)
	if err != nil {
		return err
	}
	if stmt.Tok == token.INC {
		thing.Increment(1)
	} else {
		thing.Increment(-1)
	}
	return nil
}

// go/parserを使って入力文をASTにパースさせる
func parseInput(input string) (ast.Stmt, error) {
	// 入力値をmain関数でラップしてparseする
	fset := token.NewFileSet()
	wrappedInput := "package main\nfunc main() {\n" + input + "\n}"
	wrappedInputAst, err := parser.ParseFile(fset, "", wrappedInput, parser.AllErrors)
	if err != nil {
		return nil, errs.NewBadInputError("invalid input syntax").Wrap(err)
	}

	for _, decl := range wrappedInputAst.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Name.Name != "main" {
			continue
		}
		switch len(funcDecl.Body.List) {
		case 0:
			return nil, nil
		case 1:
			return funcDecl.Body.List[0], nil
		default:
			return nil, errs.NewBadInputError("enter one statement at a time")
		}
	}
	return nil, errs.NewInternalError("wrapped input has no main function")
}

func printResult(w io.Writer, result string) {
	const greenColor = "\033[32m"
	const colorReset = "\033[0m"
	fmt.Fprintf(w, "\n%s%s%s\n\n", greenColor, result, colorReset)
}
