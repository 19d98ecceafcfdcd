// Package main provides the CLI entry point for expreval, a tool that
// evaluates JavaScript-style expressions.
//
// Expressions come from the command line, from stdin line by line, or from
// an interactive prompt when stdin is a terminal. Identifiers resolve
// against an optional YAML or JSON variable file.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/expreval"
	"go.jacobcolvin.com/expreval/log"
	"go.jacobcolvin.com/expreval/vars"
	"go.jacobcolvin.com/expreval/version"
)

var errEvalFailed = errors.New("evaluation failed")

func main() {
	evalCfg := expreval.NewConfig()
	logCfg := log.NewConfig()

	var varsFile string

	rootCmd := &cobra.Command{
		Use:   "expreval [flags] [expr ...]",
		Short: "Evaluate JavaScript-style expressions",
		Long: `expreval evaluates JavaScript-style expressions and prints each result on
its own line. With no arguments it reads expressions from stdin, or starts
an interactive prompt when stdin is a terminal. Identifiers resolve against
the variable file given with --vars.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(evalCfg, logCfg, varsFile, args)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&varsFile, "vars", "",
		"YAML or JSON file of variable bindings")
	evalCfg.RegisterFlags(flags)
	logCfg.RegisterFlags(flags)

	for _, register := range []func(*cobra.Command) error{
		evalCfg.RegisterCompletions,
		logCfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(evalCfg *expreval.Config, logCfg *log.Config, varsFile string, args []string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	resolver, err := loadVars(varsFile)
	if err != nil {
		return err
	}

	env := evalCfg.NewEnv(resolver.Ref)
	sess := evalCfg.NewSession()

	if len(args) > 0 {
		return evalArgs(sess, env, args, os.Stdout)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return runREPL(sess, env)
	}

	return evalLines(sess, env, os.Stdin, os.Stdout)
}

// loadVars builds the identifier resolver: bindings from the variable file
// when given, plus the built-in i64 and u64 constructor functions.
func loadVars(path string) (*vars.Resolver, error) {
	resolver := vars.New()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading vars: %w", err)
		}

		resolver, err = vars.FromFile(path, data)
		if err != nil {
			return nil, err
		}
	}

	resolver.Func("i64", func(_, args expreval.Value) expreval.Value {
		return expreval.NewInt64(args.At(0).Int64())
	})
	resolver.Func("u64", func(_, args expreval.Value) expreval.Value {
		return expreval.NewUint64(args.At(0).Uint64())
	})

	return resolver, nil
}

// evalArgs evaluates each argument as one expression. Every result prints;
// the command fails if any result is an error value.
func evalArgs(sess *expreval.Session, env *expreval.Env, args []string, w io.Writer) error {
	failed := false

	for _, expr := range args {
		v := sess.Eval(expr, env)
		fmt.Fprintln(w, v.String())

		if v.IsError() {
			failed = true
		}

		sess.Cleanup()
	}

	if failed {
		return errEvalFailed
	}

	return nil
}

// evalLines evaluates stdin line by line, printing one result per line.
// Empty lines are skipped. Error values print like any other result and
// do not stop the batch.
func evalLines(sess *expreval.Session, env *expreval.Env, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}

		v := sess.Eval(line, env)
		fmt.Fprintln(w, v.String())
		sess.Cleanup()
	}

	return scanner.Err()
}
