package version

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/kakkky/mything/errs"
	"github.com/kakkky/mything/mything"
)

// Info は "<名前>/<バージョン>" 形式のプロダクト文字列を分解したもの
type Info struct {
	Name string
	// Semver は正規化済みのセマンティックバージョン (例: v1.0.0)
	Semver string
	raw    string
}

// Parse はプロダクト文字列をInfoに変換する
// バージョン部分は "1.0" のような省略形も受け付け、x/mod/semverで正規化する
func Parse(s string) (Info, error) {
	idx := strings.LastIndex(s, "/")
	if idx <= 0 || idx == len(s)-1 {
		return Info{}, errs.NewBadInputError(fmt.Sprintf("malformed version string %q", s))
	}
	name, ver := s[:idx], s[idx+1:]
	if !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	if !semver.IsValid(ver) {
		return Info{}, errs.NewBadInputError(fmt.Sprintf("invalid semantic version %q", s[idx+1:]))
	}
	return Info{
		Name:   name,
		Semver: semver.Canonical(ver),
		raw:    s,
	}, nil
}

// Current はライブラリ自身のバージョン情報を返す
func Current() Info {
	info, err := Parse(mything.Version())
	if err != nil {
		panic(err)
	}
	return info
}

func (i Info) String() string {
	if i.raw != "" {
		return i.raw
	}
	return i.Name + "/" + strings.TrimPrefix(i.Semver, "v")
}

// Compatible は名前とメジャーバージョンが一致するかどうかを判定する
func (i Info) Compatible(other Info) bool {
	return i.Name == other.Name && semver.Major(i.Semver) == semver.Major(other.Semver)
}

// Compare はsemverとしての大小を返す
func (i Info) Compare(other Info) int {
	return semver.Compare(i.Semver, other.Semver)
}

// PrintVersion は現在のバージョンを表示する
func PrintVersion(w io.Writer) {
	fmt.Fprintln(w, Current().String())
}
