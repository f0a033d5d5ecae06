package completer

import "github.com/kakkky/mything/types"

// candidate は補完候補となる識別子とその説明
type candidate struct {
	name        string
	suggestType suggestType
	description string
	// 補完時に末尾へ付け足す文字列 (関数呼び出しの"()"など)
	suffix string
}

// pkgCandidates はライブラリパッケージ直下の補完候補
var pkgCandidates = []candidate{
	{
		name:        string(types.FuncNew),
		suggestType: suggestTypeFunction,
		description: "New(value int) *MyThing creates an instance with an initial value",
		suffix:      "()",
	},
	{
		name:        string(types.FuncVersion),
		suggestType: suggestTypeFunction,
		description: "Version() string returns the library version",
		suffix:      "()",
	},
	{
		name:        "VERSION",
		suggestType: suggestTypeConstant,
		description: "library version string",
	},
}

// thingCandidates は *mything.MyThing の値に対する補完候補
var thingCandidates = []candidate{
	{
		name:        string(types.MethodIncrement),
		suggestType: suggestTypeMethod,
		description: "Increment(delta int) int adds delta and returns the new value",
		suffix:      "()",
	},
	{
		name:        string(types.MethodSetValue),
		suggestType: suggestTypeMethod,
		description: "SetValue(v int) replaces the value",
		suffix:      "()",
	},
	{
		name:        string(types.MethodString),
		suggestType: suggestTypeMethod,
		description: "String() string",
		suffix:      "()",
	},
	{
		name:        string(types.MethodValue),
		suggestType: suggestTypeMethod,
		description: "Value() int returns the current value",
		suffix:      "()",
	},
	{
		name:        string(types.PropertyValue),
		suggestType: suggestTypeProperty,
		description: "readable and assignable value (t.Value = n)",
	},
}
