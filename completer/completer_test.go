package completer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/kakkky/go-prompt"

	"github.com/kakkky/mything/mything"
	"github.com/kakkky/mything/registry"
)

var testHandle = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")

func TestCompleter_Complete(t *testing.T) {
	tests := []struct {
		name          string
		inputText     string
		setupRegistry func(*registry.Registry)
		expected      []prompt.Suggest
	}{
		{
			name:          "Complete package name",
			inputText:     "myt",
			setupRegistry: func(r *registry.Registry) {},
			expected: []prompt.Suggest{
				{
					Text:        "mything",
					DisplayText: "mything",
					Description: "Package: MyThing library",
				},
			},
		},
		{
			name:      "Complete package name and declared variables",
			inputText: "m",
			setupRegistry: func(r *registry.Registry) {
				r.Register("myCounter", mything.New(3))
				r.Register("other", mything.New(1))
			},
			expected: []prompt.Suggest{
				{
					Text:        "myCounter",
					DisplayText: "myCounter",
					Description: "Variable: MyThing{value: 3} #0f8fad5b",
				},
				{
					Text:        "mything",
					DisplayText: "mything",
					Description: "Package: MyThing library",
				},
			},
		},
		{
			name:          "Complete package functions",
			inputText:     "mything.",
			setupRegistry: func(r *registry.Registry) {},
			expected: []prompt.Suggest{
				{
					Text:        "mything.New()",
					DisplayText: "New",
					Description: "Function: New(value int) *MyThing creates an instance with an initial value",
				},
				{
					Text:        "mything.VERSION",
					DisplayText: "VERSION",
					Description: "Constant: library version string",
				},
				{
					Text:        "mything.Version()",
					DisplayText: "Version",
					Description: "Function: Version() string returns the library version",
				},
			},
		},
		{
			name:          "Complete package function with prefix",
			inputText:     "mything.Ve",
			setupRegistry: func(r *registry.Registry) {},
			expected: []prompt.Suggest{
				{
					Text:        "mything.Version()",
					DisplayText: "Version",
					Description: "Function: Version() string returns the library version",
				},
			},
		},
		{
			name:      "Complete methods of declared variable",
			inputText: "t.In",
			setupRegistry: func(r *registry.Registry) {
				r.Register("t", mything.New(10))
			},
			expected: []prompt.Suggest{
				{
					Text:        "t.Increment()",
					DisplayText: "Increment",
					Description: "Method: Increment(delta int) int adds delta and returns the new value",
				},
			},
		},
		{
			name:      "Complete value method and property",
			inputText: "t.Va",
			setupRegistry: func(r *registry.Registry) {
				r.Register("t", mything.New(10))
			},
			expected: []prompt.Suggest{
				{
					Text:        "t.Value()",
					DisplayText: "Value",
					Description: "Method: Value() int returns the current value",
				},
				{
					Text:        "t.Value",
					DisplayText: "Value",
					Description: "Property: readable and assignable value (t.Value = n)",
				},
			},
		},
		{
			name:          "Complete methods on constructor chain",
			inputText:     "mything.New(1).Se",
			setupRegistry: func(r *registry.Registry) {},
			expected: []prompt.Suggest{
				{
					Text:        "mything.New(1).SetValue()",
					DisplayText: "SetValue",
					Description: "Method: SetValue(v int) replaces the value",
				},
			},
		},
		{
			name:      "Complete right hand side of assignment",
			inputText: "u := mything.N",
			setupRegistry: func(r *registry.Registry) {
				r.Register("t", mything.New(10))
			},
			expected: []prompt.Suggest{
				{
					Text:        "mything.New()",
					DisplayText: "New",
					Description: "Function: New(value int) *MyThing creates an instance with an initial value",
				},
			},
		},
		{
			name:      "Complete inside call arguments",
			inputText: "t.Increment(u.Inc",
			setupRegistry: func(r *registry.Registry) {
				r.Register("t", mything.New(10))
				r.Register("u", mything.New(1))
			},
			expected: []prompt.Suggest{
				{
					Text:        "t.Increment(u.Increment()",
					DisplayText: "Increment",
					Description: "Method: Increment(delta int) int adds delta and returns the new value",
				},
			},
		},
		{
			name:      "Declared variable shadows package name",
			inputText: "mything.Inc",
			setupRegistry: func(r *registry.Registry) {
				r.Register("mything", mything.New(10))
			},
			expected: []prompt.Suggest{
				{
					Text:        "mything.Increment()",
					DisplayText: "Increment",
					Description: "Method: Increment(delta int) int adds delta and returns the new value",
				},
			},
		},
		{
			name:          "No suggestions for undefined receiver",
			inputText:     "x.",
			setupRegistry: func(r *registry.Registry) {},
			expected:      []prompt.Suggest{},
		},
		{
			name:      "No suggestions on int result",
			inputText: "t.Increment(1).",
			setupRegistry: func(r *registry.Registry) {
				r.Register("t", mything.New(10))
			},
			expected: []prompt.Suggest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.NewRegistry(registry.WithHandleFunc(func() uuid.UUID { return testHandle }))
			tt.setupRegistry(reg)
			completer := NewCompleter(reg)
			doc := prompt.Document{
				Text: tt.inputText,
			}

			got := completer.Complete(doc)

			// 結果を比較（順序は考慮しない）
			opts := []cmp.Option{
				cmp.AllowUnexported(prompt.Suggest{}),
				cmpopts.SortSlices(func(a, b prompt.Suggest) bool {
					return a.Text < b.Text
				}),
			}

			if diff := cmp.Diff(tt.expected, got, opts...); diff != "" {
				t.Errorf("Complete() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompleter_CompleteVariableHandle(t *testing.T) {
	reg := registry.NewRegistry()
	first := reg.Register("t", mything.New(10))
	completer := NewCompleter(reg)

	got := completer.Complete(prompt.Document{Text: "t"})
	want := []prompt.Suggest{
		{Text: "t", DisplayText: "t", Description: "Variable: MyThing{value: 10} #" + first.ShortHandle()},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(prompt.Suggest{})); diff != "" {
		t.Errorf("Complete() mismatch (-want +got):\n%s", diff)
	}

	// 同名で宣言し直すとハンドルが変わり、説明から区別できる
	second := reg.Register("t", mything.New(10))
	if second.Handle == first.Handle {
		t.Fatalf("expected a new handle on redeclaration")
	}
	got = completer.Complete(prompt.Document{Text: "t"})
	want[0].Description = "Variable: MyThing{value: 10} #" + second.ShortHandle()
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(prompt.Suggest{})); diff != "" {
		t.Errorf("Complete() after redeclaration mismatch (-want +got):\n%s", diff)
	}
}

func TestTrimCallArgs(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "mything.New(1)", expected: "mything.New", ok: true},
		{input: "mything.New((1 + 2) * 3)", expected: "mything.New", ok: true},
		{input: "mything.New(1).Increment(2)", expected: "mything.New(1).Increment", ok: true},
		{input: "mything.New", ok: false},
		{input: "1)", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := trimCallArgs(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}
