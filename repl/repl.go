// Package repl implements the interactive prompt. State persists across
// lines through a single long-lived interpreter.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/mewlang/mew/interpreter"
	"github.com/mewlang/mew/project"
	"github.com/mewlang/mew/runtime"
)

const prompt = "🐾 > "

// Run drives the read-eval-print loop until exit or EOF. Errors are
// reported and the session keeps going.
func Run() error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Printf("🐱 Mew Programming Language v%s\n", project.CurrentVersion)
	fmt.Println("\nType 'exit' or press Ctrl+C to exit")

	interp := interpreter.New()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			fmt.Println("Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		source := strings.TrimSpace(line)
		switch source {
		case "":
			continue
		case "exit", "quit", "bye", "q":
			fmt.Println("Goodbye!")
			return nil
		}

		// statements want a terminator; spare the user the typing
		if !strings.HasSuffix(source, ";") && !strings.HasSuffix(source, "}") {
			source += ";"
		}

		value, err := interp.Run(source)
		if err != nil {
			fmt.Fprintf(rl.Stderr(), "hiss! %s\n", err)
			continue
		}
		if value.Type != runtime.TypeUndefined {
			fmt.Println(value.String())
		}
	}
}
