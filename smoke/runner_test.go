package smoke

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	gomock "go.uber.org/mock/gomock"

	"github.com/kakkky/mything/errs"
	"github.com/kakkky/mything/executor"
	"github.com/kakkky/mything/registry"
)

func TestRunner_Run(t *testing.T) {
	steps := []Step{
		{Line: 1, Input: "t := mything.New(10)"},
		{Line: 2, Input: "t.Increment(8)", Want: "18", HasWant: true},
		{Line: 3, Input: "t.Value", Want: "18", HasWant: true},
	}

	tests := []struct {
		name           string
		setupMocks     func(*MockEvaluator)
		expectedErr    errs.ErrType
		expectedPassed int
		expectedFailed int
		expectedOutput string
	}{
		{
			name: "all steps pass",
			setupMocks: func(m *MockEvaluator) {
				gomock.InOrder(
					m.EXPECT().Eval("t := mything.New(10)").Return("", nil),
					m.EXPECT().Eval("t.Increment(8)").Return("18", nil),
					m.EXPECT().Eval("t.Value").Return("18", nil),
				)
			},
			expectedPassed: 3,
			expectedOutput: "18\n18\n",
		},
		{
			name: "stops at first mismatch",
			setupMocks: func(m *MockEvaluator) {
				gomock.InOrder(
					m.EXPECT().Eval("t := mything.New(10)").Return("", nil),
					m.EXPECT().Eval("t.Increment(8)").Return("17", nil),
				)
				// 3行目は評価されない
			},
			expectedErr:    errs.ASSERTION_ERROR,
			expectedPassed: 1,
			expectedFailed: 1,
			expectedOutput: "",
		},
		{
			name: "evaluation error keeps its type",
			setupMocks: func(m *MockEvaluator) {
				m.EXPECT().Eval("t := mything.New(10)").Return("", errs.NewBadInputError("undefined: mything"))
			},
			expectedErr:    errs.BAD_INPUT_ERROR,
			expectedPassed: 0,
			expectedFailed: 1,
			expectedOutput: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockEvaluator := NewMockEvaluator(ctrl)
			tt.setupMocks(mockEvaluator)

			var out bytes.Buffer
			sut := NewRunner(mockEvaluator, WithOutput(&out))
			report, err := sut.Run(context.Background(), steps)

			if tt.expectedErr != "" {
				if err == nil {
					t.Fatalf("expected %s, got nil", tt.expectedErr)
				}
				if got := errs.TypeOf(err); got != tt.expectedErr {
					t.Errorf("expected %s, got %s (%v)", tt.expectedErr, got, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if report.Passed != tt.expectedPassed || report.Failed != tt.expectedFailed {
				t.Errorf("expected passed=%d failed=%d, got passed=%d failed=%d",
					tt.expectedPassed, tt.expectedFailed, report.Passed, report.Failed)
			}
			if got := out.String(); got != tt.expectedOutput {
				t.Errorf("expected output %q, got %q", tt.expectedOutput, got)
			}
		})
	}
}

func TestRunner_RunCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEvaluator := NewMockEvaluator(ctrl)
	// キャンセル済みなので一度も評価されない

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sut := NewRunner(mockEvaluator, WithOutput(&bytes.Buffer{}))
	report, err := sut.Run(ctx, ParseDefault())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("expected no results, got %d", len(report.Results))
	}
}

func TestRunner_Verbose(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockEvaluator := NewMockEvaluator(ctrl)
	gomock.InOrder(
		mockEvaluator.EXPECT().Eval("t := mything.New(1)").Return("", nil),
		mockEvaluator.EXPECT().Eval("t.Value").Return("2", nil),
	)

	var out bytes.Buffer
	sut := NewRunner(mockEvaluator, WithOutput(&out), WithVerbose(true))
	_, err := sut.Run(context.Background(), []Step{
		{Line: 1, Input: "t := mything.New(1)"},
		{Line: 2, Input: "t.Value", Want: "1", HasWant: true},
	})
	if errs.TypeOf(err) != errs.ASSERTION_ERROR {
		t.Fatalf("expected assertion error, got %v", err)
	}
	expected := "ok   line 1: t := mything.New(1)\nFAIL line 2: t.Value => 2\n"
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

// 組み込みスクリプトを実際のExecutorで評価する
func TestRunner_DefaultScript(t *testing.T) {
	var out bytes.Buffer
	eval := executor.NewExecutor(registry.NewRegistry(), executor.WithOutput(&out))
	sut := NewRunner(eval, WithOutput(&out))

	report, err := sut.Run(context.Background(), ParseDefault())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Passed != 6 || report.Failed != 0 {
		t.Errorf("expected 6 passed, got %+v", report)
	}
	if diff := cmp.Diff("MyThing/1.0\n10\n50\n50\n", out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}
