package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nikandfor/hacked/hfmt"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/ptitsalang/ptitsa/compiler"
)

func main() {
	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile SRC [DST] translates script to C++",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: flags(
			cli.NewFlag("output,o", "", "destination file, stdout if empty"),
		),
	}

	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print classified token lines",
		Action:      tokensAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	treeCmd := &cli.Command{
		Name:        "tree",
		Description: "print statement trees",
		Action:      treeAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "print script in canonical form",
		Action:      fmtAct,
		Args:        cli.Args{},
		Flags:       flags(),
	}

	app := &cli.Command{
		Name:        "ptitsa",
		Description: "ptitsa is a tool for compiling ptitsa scripts",
		Commands: []*cli.Command{
			compileCmd,
			tokensCmd,
			treeCmd,
			fmtCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func flags(fs ...*cli.Flag) []*cli.Flag {
	return append(fs,
		cli.NewFlag("verbosity,v", "", "log topics to print (tokens, trees, order, resolve, structure)"),
	)
}

func setup(c *cli.Command) context.Context {
	tlog.SetVerbosity(c.String("verbosity"))

	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	return ctx
}

func compileAct(c *cli.Command) (err error) {
	ctx := setup(c)

	if len(c.Args) == 0 || len(c.Args) > 2 {
		return errors.New("expected SRC [DST] arguments")
	}

	dst := c.String("output")
	if len(c.Args) == 2 {
		dst = c.Args[1]
	}

	obj, err := compiler.CompileFile(ctx, c.Args[0])
	if err != nil {
		return diag(c.Args[0], err)
	}

	if dst == "" {
		_, err = os.Stdout.Write(obj)
		return err
	}

	err = os.WriteFile(dst, obj, 0o644)
	if err != nil {
		return errors.Wrap(err, "write %v", dst)
	}

	return nil
}

func tokensAct(c *cli.Command) (err error) {
	ctx := setup(c)

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read file")
		}

		st, err := compiler.New()
		if err != nil {
			return err
		}

		doc, err := st.Tokens(ctx, a, text)
		if err != nil {
			return diag(a, err)
		}

		for _, l := range doc.Lines {
			fmt.Printf("%v\n", l)
		}
	}

	return nil
}

func treeAct(c *cli.Command) (err error) {
	ctx := setup(c)

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read file")
		}

		st, err := compiler.New()
		if err != nil {
			return err
		}

		stmts, err := st.Front(ctx, a, text)
		if err != nil {
			return diag(a, err)
		}

		var b []byte

		for _, s := range stmts {
			b = hfmt.Appendf(b, "%4d { %v }\n", s.Line, s.Cat)
			b = s.Tree.AppendDump(b, 1)
		}

		_, err = os.Stdout.Write(b)
		if err != nil {
			return err
		}
	}

	return nil
}

func fmtAct(c *cli.Command) (err error) {
	ctx := setup(c)

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read file")
		}

		b, err := compiler.Format(ctx, a, text)
		if err != nil {
			return diag(a, err)
		}

		_, err = os.Stdout.Write(b)
		if err != nil {
			return err
		}
	}

	return nil
}

func diag(name string, err error) error {
	if line, ok := compiler.LineOf(err); ok {
		return errors.Wrap(err, "%v:%d", name, line)
	}

	return errors.Wrap(err, "%v", name)
}
