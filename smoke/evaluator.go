package smoke

//go:generate mockgen -package=smoke -source=./evaluator.go -destination=./evaluator_mock.go

// Evaluator はスクリプトの1行を評価し、表示される結果を返す
type Evaluator interface {
	Eval(input string) (string, error)
}
