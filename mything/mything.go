package mything

import "strconv"

// VERSION はライブラリのバージョン文字列を表す
const VERSION = "MyThing/1.0"

// MyThing は整数値をひとつだけ保持する値オブジェクト
// ゼロ値はそのまま利用でき、値は0となる
//
// 内部で排他制御は行わないため、複数のgoroutineから使う場合は呼び出し側で排他すること
type MyThing struct {
	value int
}

// New は初期値を持つMyThingを生成する
func New(value int) *MyThing {
	return &MyThing{value: value}
}

// Version はライブラリのバージョンを返す。インスタンスは不要
func Version() string {
	return VERSION
}

// Value は現在の値を返す
func (m *MyThing) Value() int {
	return m.value
}

// SetValue は値を置き換える
func (m *MyThing) SetValue(v int) {
	m.value = v
}

// Increment は値にdeltaを加算し、加算後の値を返す
// オーバーフロー時はintの2の補数表現に従いラップアラウンドする
func (m *MyThing) Increment(delta int) int {
	m.value += delta
	return m.value
}

func (m *MyThing) String() string {
	return "MyThing{value: " + strconv.Itoa(m.value) + "}"
}
