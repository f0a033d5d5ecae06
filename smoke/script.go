package smoke

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/kakkky/mything/errs"
)

//go:embed default_script.txt
var DefaultScript string

const wantMarker = "// want:"

// Step はスクリプトの1行分の入力と、その期待値
type Step struct {
	Line  int
	Input string
	// HasWant がfalseの場合は出力を検証しない
	Want    string
	HasWant bool
}

// Parse はスクリプトを読み込み、評価するステップの一覧を返す
//
//	t.Increment(8)  // want: 50
//
// のように行末の "// want:" 以降が期待する出力となる
// 空行と "//" で始まる行は読み飛ばす
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		step := Step{Line: lineNum, Input: line}
		if idx := strings.Index(line, wantMarker); idx >= 0 {
			step.Input = strings.TrimSpace(line[:idx])
			step.Want = strings.TrimSpace(line[idx+len(wantMarker):])
			step.HasWant = true
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.NewInternalError("failed to read script").Wrap(err)
	}
	if len(steps) == 0 {
		return nil, errs.NewBadInputError("script has no statements")
	}
	return steps, nil
}

// ParseDefault は組み込みのスクリプトをパースする
func ParseDefault() []Step {
	steps, err := Parse(strings.NewReader(DefaultScript))
	if err != nil {
		panic(fmt.Sprintf("embedded smoke script is broken: %v", err))
	}
	return steps
}
