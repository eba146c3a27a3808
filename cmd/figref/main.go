// Command figref is a pandoc JSON filter that numbers figures and resolves
// figure references.
//
//	pandoc --filter figref -o out.html in.md
//	pandoc -t json in.md | figref html > out.json
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/figref/internal/foundation/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	s := streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	var cli CLI
	err := parse(&cli, os.Args[1:], s)
	if err == nil {
		err = cli.Run(ctx, s)
	}
	stop()

	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
