package registry

import (
	"slices"

	"github.com/google/uuid"

	"github.com/kakkky/mything/mything"
	"github.com/kakkky/mything/types"
)

// Entry はセッション内で宣言されたMyThingのインスタンス
type Entry struct {
	Name types.DeclName
	// Handle は宣言ごとに払い出される識別子。同名で再宣言すると変わる
	Handle uuid.UUID
	Thing  *mything.MyThing
}

// ShortHandle はハンドルの先頭8桁を返す。補完候補の説明で同名の再宣言を見分けるのに使う
func (e *Entry) ShortHandle() string {
	return e.Handle.String()[:8]
}

// Registry はREPLセッション内で宣言されたインスタンスを管理する
type Registry struct {
	entries   map[types.DeclName]*Entry
	newHandle func() uuid.UUID
}

type Option func(*Registry)

// WithHandleFunc はハンドルの払い出し方法を差し替える。デフォルトはuuid.New
func WithHandleFunc(f func() uuid.UUID) Option {
	return func(r *Registry) {
		if f != nil {
			r.newHandle = f
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		entries:   make(map[types.DeclName]*Entry),
		newHandle: uuid.New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register はインスタンスを登録する。同名のものがあれば置き換える
func (r *Registry) Register(name types.DeclName, thing *mything.MyThing) *Entry {
	entry := &Entry{
		Name:   name,
		Handle: r.newHandle(),
		Thing:  thing,
	}
	r.entries[name] = entry
	return entry
}

func (r *Registry) Lookup(name types.DeclName) (*Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

func (r *Registry) IsRegistered(name types.DeclName) bool {
	_, ok := r.entries[name]
	return ok
}

// Delete は登録を削除し、削除できたかどうかを返す
func (r *Registry) Delete(name types.DeclName) bool {
	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	return true
}

// Names は登録済みの変数名を昇順で返す
func (r *Registry) Names() []types.DeclName {
	names := make([]types.DeclName, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Entries は登録済みのエントリを変数名の昇順で返す
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.entries))
	for _, name := range r.Names() {
		entries = append(entries, r.entries[name])
	}
	return entries
}
