package smoke

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/kakkky/mything/errs"
)

// Result は1ステップの評価結果
type Result struct {
	Step Step
	Got  string
	Err  error
}

func (r Result) Passed() bool {
	return r.Err == nil
}

type Report struct {
	Passed  int
	Failed  int
	Results []Result
}

type Runner struct {
	eval    Evaluator
	out     io.Writer
	logger  *zap.Logger
	verbose bool
}

type Option func(*Runner)

// WithOutput は評価結果の出力先を指定する。デフォルトは標準出力
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithVerbose を指定すると結果だけでなく入力と判定も表示する
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.verbose = verbose
	}
}

func NewRunner(eval Evaluator, opts ...Option) *Runner {
	r := &Runner{
		eval:   eval,
		out:    os.Stdout,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run はステップを順に評価し、最初の失敗で打ち切る
// 失敗した場合はReportと合わせて失敗理由のエラーを返す
func (r *Runner) Run(ctx context.Context, steps []Step) (*Report, error) {
	report := &Report{}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := r.runStep(step)
		report.Results = append(report.Results, result)
		r.print(result)

		if !result.Passed() {
			report.Failed++
			r.logger.Warn("smoke step failed",
				zap.Int("line", step.Line),
				zap.String("input", step.Input),
				zap.Error(result.Err),
			)
			return report, result.Err
		}
		report.Passed++
		r.logger.Debug("smoke step passed", zap.Int("line", step.Line), zap.String("input", step.Input))
	}
	r.logger.Info("smoke run finished", zap.Int("passed", report.Passed))
	return report, nil
}

func (r *Runner) runStep(step Step) Result {
	got, err := r.eval.Eval(step.Input)
	if err != nil {
		return Result{
			Step: step,
			Err:  fmt.Errorf("line %d: %s: %w", step.Line, step.Input, err),
		}
	}
	if step.HasWant && got != step.Want {
		return Result{
			Step: step,
			Got:  got,
			Err:  errs.NewAssertionError(fmt.Sprintf("line %d: %s", step.Line, step.Input), step.Want, got),
		}
	}
	return Result{Step: step, Got: got}
}

func (r *Runner) print(result Result) {
	if !r.verbose {
		// 結果を持つ行だけをそのまま表示する
		if result.Passed() && result.Got != "" {
			fmt.Fprintln(r.out, result.Got)
		}
		return
	}

	status := "ok  "
	if !result.Passed() {
		status = "FAIL"
	}
	if result.Got != "" {
		fmt.Fprintf(r.out, "%s line %d: %s => %s\n", status, result.Step.Line, result.Step.Input, result.Got)
		return
	}
	fmt.Fprintf(r.out, "%s line %d: %s\n", status, result.Step.Line, result.Step.Input)
}
