package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	var maxDepth int
	var interactive bool
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.IntVar(&maxDepth, "max-depth", 0, "limit call nesting depth")
	flag.BoolVar(&interactive, "i", false, "read programs interactively")
	flag.Parse()

	var opts = []VMOption{
		WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	if maxDepth != 0 {
		opts = append(opts, WithMaxDepth(maxDepth))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if interactive {
		os.Exit(repl(ctx, vm))
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if err := vm.Run(ctx, source); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}

func readSource(name string) (string, error) {
	if name == "" {
		b, err := ioutil.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := ioutil.ReadFile(name)
	return string(b), err
}

const historyFile = ".knusper_history"

func repl(ctx context.Context, vm *VM) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		source, ok := readProgram(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
		if err := vm.Run(ctx, source); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
	}
}

// readProgram prompts for one program, continuing across lines while the
// accumulated input still has an open bracket group.
func readProgram(ln *liner.State) (string, bool) {
	var sb strings.Builder
	for {
		prompt := "knusper> "
		if sb.Len() > 0 {
			prompt = "     ... "
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		if _, err := load(sb.String()); isIncomplete(err) {
			continue
		}
		return sb.String(), true
	}
}
