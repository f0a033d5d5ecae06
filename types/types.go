package types

// PkgName はパッケージ名を表す。
type PkgName string

// DeclName はセッション内で宣言された変数名を表す。
type DeclName string

// FuncName はパッケージ関数名を表す。
type FuncName string

// MethodName はメソッド名を表す。
type MethodName string

// PropertyName はフィールドのように読み書きできるプロパティ名を表す。
type PropertyName string

// LibPkgName はコンソールから参照できるライブラリのパッケージ名。
const LibPkgName PkgName = "mything"

const (
	FuncNew     FuncName = "New"
	FuncVersion FuncName = "Version"
)

const (
	MethodValue     MethodName = "Value"
	MethodSetValue  MethodName = "SetValue"
	MethodIncrement MethodName = "Increment"
	MethodString    MethodName = "String"
)

// PropertyValue は t.Value / t.Value = n の形で読み書きされる
const PropertyValue PropertyName = "Value"
