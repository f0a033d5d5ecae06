package completer

import (
	"strings"

	"github.com/kakkky/go-prompt"
)

type suggestionBuilder struct {
	input input
}

type input struct {
	raw          string // 元の入力全体
	text         string // 補完対象となる式の部分
	basePart     string // セレクタ式のベース部分 (最後の"."より前)
	selectorPart string // セレクタ式のセレクタ部分 (最後の"."より後)
}

type suggestType int

const (
	suggestTypeUnknown suggestType = iota
	suggestTypePackage
	suggestTypeVariable
	suggestTypeFunction
	suggestTypeMethod
	suggestTypeProperty
	suggestTypeConstant
)

func newSuggestionBuilder(rawInput string) *suggestionBuilder {
	// 代入しようとしている場合、"= "以降の部分を補完対象とする
	if pos, found := findEqualAndSpacePos(rawInput); found {
		startIdx := pos + 2 // "= "の長さは2なのでそれ以降
		rawInput = rawInput[startIdx:]
	}

	sb := &suggestionBuilder{
		input: input{
			raw:  rawInput,
			text: extractExprPart(rawInput),
		},
	}

	if idx := strings.LastIndex(sb.input.text, "."); idx >= 0 {
		sb.input.basePart = sb.input.text[:idx]
		sb.input.selectorPart = sb.input.text[idx+1:]
	}
	return sb
}

// "= "の位置を探し、見つかったらその位置とtrueを返す
func findEqualAndSpacePos(input string) (pos int, found bool) {
	equalAndSpace := "= "
	equalPos := strings.LastIndex(input, equalAndSpace)
	if equalPos == -1 {
		return -1, false
	}
	return equalPos, true
}

// 引数の途中 (例: "t.Increment(u.V") の場合は最後の式だけを補完対象とする
func extractExprPart(rawInput string) string {
	depth := 0
	for i := len(rawInput) - 1; i >= 0; i-- {
		switch rawInput[i] {
		case ')':
			depth++
		case '(':
			if depth == 0 {
				return rawInput[i+1:]
			}
			depth--
		case ' ', ',', '+', '-', '*', '/', '%':
			if depth == 0 {
				return rawInput[i+1:]
			}
		}
	}
	return rawInput
}

func (sb *suggestionBuilder) build(c candidate) prompt.Suggest {
	return prompt.Suggest{
		Text:        sb.buildSuggestText(c.name) + c.suffix,
		DisplayText: c.name,
		Description: sb.buildSuggestDescription(c.suggestType, c.description),
	}
}

func (sb *suggestionBuilder) buildSuggestText(candidateStr string) string {
	// 最長一致する prefix を見つける
	maxLen := min(len(sb.input.raw), len(candidateStr))
	matchLen := 0

	for i := 1; i <= maxLen; i++ {
		if strings.HasSuffix(sb.input.raw, candidateStr[:i]) {
			matchLen = i
		}
	}

	if matchLen > 0 {
		// 一致部分を除去して candidateStr に置き換え
		return strings.TrimSuffix(sb.input.raw, candidateStr[:matchLen]) + candidateStr
	}

	// 一致なしの場合
	return sb.input.raw + candidateStr
}

func (sb *suggestionBuilder) buildSuggestDescription(suggestType suggestType, description string) string {
	suggestTypeStr := convertSuggestTypeToString(suggestType)
	if description == "" {
		return suggestTypeStr
	}
	return suggestTypeStr + ": " + description
}

func convertSuggestTypeToString(suggestType suggestType) string {
	switch suggestType {
	case suggestTypePackage:
		return "Package"
	case suggestTypeVariable:
		return "Variable"
	case suggestTypeFunction:
		return "Function"
	case suggestTypeMethod:
		return "Method"
	case suggestTypeProperty:
		return "Property"
	case suggestTypeConstant:
		return "Constant"
	default:
		return "Unknown"
	}
}

func (sb *suggestionBuilder) isSelector() bool {
	return strings.Contains(sb.input.text, ".")
}
