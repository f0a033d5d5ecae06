package repl

import (
	"fmt"
	"io"
	"os"

	"github.com/kakkky/go-prompt"

	"github.com/kakkky/mything/completer"
	"github.com/kakkky/mything/config"
	"github.com/kakkky/mything/executor"
)

type Repl struct {
	pt  *prompt.Prompt
	out io.Writer
}

func NewRepl(completer *completer.Completer, executor *executor.Executor, cfg *config.Config) *Repl {
	pt := prompt.New(
		executor.Execute,
		completer.Complete,
		prompt.OptionTitle(cfg.Prompt.Title),
		prompt.OptionPrefix(cfg.Prompt.Prefix),
		prompt.OptionAddKeyBind(keyBinds...),
	)
	return &Repl{
		pt:  pt,
		out: os.Stdout,
	}
}

func (r *Repl) Run() {
	printAscii(r.out)
	r.pt.Run()
}

var keyBinds = []prompt.KeyBind{
	{
		Key: prompt.ControlC,
		Fn: func(buf *prompt.Buffer) {
			fmt.Println("\nExit on Ctrl+C")
			os.Exit(0)
		},
	},
}
