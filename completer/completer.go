package completer

import (
	"strings"

	"github.com/kakkky/go-prompt"

	"github.com/kakkky/mything/registry"
	"github.com/kakkky/mything/types"
)

// Completer は補完エンジンを担う
// go-promptのCompleterインターフェースを実装している
type Completer struct {
	registry *registry.Registry
}

// NewCompleter はCompleterのインスタンスを生成する
func NewCompleter(registry *registry.Registry) *Completer {
	return &Completer{
		registry: registry,
	}
}

// Complete はgo-promptのCompleterインターフェースを実装するメソッドで、補完候補を返す
func (c *Completer) Complete(input prompt.Document) []prompt.Suggest {
	sb := newSuggestionBuilder(input.Text)

	if !sb.isSelector() {
		return c.findIdentSuggestions(sb)
	}
	return c.findSelectorSuggestions(sb)
}

// パッケージ名とセッション内で宣言された変数名を候補とする
func (c *Completer) findIdentSuggestions(sb *suggestionBuilder) []prompt.Suggest {
	suggestions := make([]prompt.Suggest, 0)
	if strings.HasPrefix(string(types.LibPkgName), sb.input.text) {
		suggestions = append(suggestions, sb.build(candidate{
			name:        string(types.LibPkgName),
			suggestType: suggestTypePackage,
			description: "MyThing library",
		}))
	}
	for _, entry := range c.registry.Entries() {
		if strings.HasPrefix(string(entry.Name), sb.input.text) {
			suggestions = append(suggestions, sb.build(candidate{
				name:        string(entry.Name),
				suggestType: suggestTypeVariable,
				description: entry.Thing.String(),
			}))
		}
	}
	return suggestions
}

func (c *Completer) findSelectorSuggestions(sb *suggestionBuilder) []prompt.Suggest {
	suggestions := make([]prompt.Suggest, 0)

	var candidates []candidate
	switch c.resolveReceiver(sb.input.basePart) {
	case receiverKindPkg:
		candidates = pkgCandidates
	case receiverKindThing:
		candidates = thingCandidates
	default:
		return suggestions
	}

	for _, cand := range candidates {
		if strings.HasPrefix(cand.name, sb.input.selectorPart) {
			suggestions = append(suggestions, sb.build(cand))
		}
	}
	return suggestions
}

type receiverKind int

const (
	receiverKindUnknown receiverKind = iota
	receiverKindPkg
	receiverKindThing
)

// resolveReceiver はセレクタ式のベース部分が何を指しているかを判定する
func (c *Completer) resolveReceiver(basePart string) receiverKind {
	// 宣言済みの変数はパッケージ名より優先する
	if c.registry.IsRegistered(types.DeclName(basePart)) {
		return receiverKindThing
	}
	if basePart == string(types.LibPkgName) {
		return receiverKindPkg
	}

	// メソッドチェーンの場合は呼び出し先から戻り値の型を判定する
	callee, ok := trimCallArgs(basePart)
	if !ok {
		return receiverKindUnknown
	}
	idx := strings.LastIndex(callee, ".")
	if idx < 0 {
		return receiverKindUnknown
	}
	if callee[idx+1:] == string(types.FuncNew) && c.resolveReceiver(callee[:idx]) == receiverKindPkg {
		return receiverKindThing
	}
	return receiverKindUnknown
}

// "mything.New(1)" のような呼び出し式から引数部分を取り除き "mything.New" を返す
func trimCallArgs(expr string) (string, bool) {
	if !strings.HasSuffix(expr, ")") {
		return "", false
	}
	depth := 0
	for i := len(expr) - 1; i >= 0; i-- {
		switch expr[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return expr[:i], true
			}
		}
	}
	return "", false
}
