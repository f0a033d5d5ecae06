package executor

import (
	"strconv"

	"github.com/kakkky/mything/mything"
)

type valueKind int

const (
	// 値を返さない呼び出し (SetValueなど)
	valueKindNone valueKind = iota
	valueKindInt
	valueKindString
	valueKindThing
)

func (k valueKind) String() string {
	switch k {
	case valueKindInt:
		return "value of type int"
	case valueKindString:
		return "value of type string"
	case valueKindThing:
		return "value of type *mything.MyThing"
	default:
		return "no value"
	}
}

// value は式の評価結果
type value struct {
	kind  valueKind
	i     int
	s     string
	thing *mything.MyThing
}

func intValue(n int) value {
	return value{kind: valueKindInt, i: n}
}

func stringValue(s string) value {
	return value{kind: valueKindString, s: s}
}

func thingValue(thing *mything.MyThing) value {
	return value{kind: valueKindThing, thing: thing}
}

// String はfmt.Printlnで出力した場合と同じ表現を返す
func (v value) String() string {
	switch v.kind {
	case valueKindInt:
		return strconv.Itoa(v.i)
	case valueKindString:
		return v.s
	case valueKindThing:
		return v.thing.String()
	default:
		return ""
	}
}
