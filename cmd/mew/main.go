package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mewlang/mew/interpreter"
	"github.com/mewlang/mew/mewerr"
	"github.com/mewlang/mew/project"
	"github.com/mewlang/mew/repl"
	"github.com/mewlang/mew/upgrade"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		if err := repl.Run(); err != nil {
			fatal(err)
		}
		return
	}

	switch args[0] {
	case "version", "-v", "--version":
		cmdVersion()
	case "upgrade":
		cmdUpgrade(args[1:])
	case "init":
		cmdInit(args[1:])
	case "start":
		cmdStart()
	case "help", "-h", "--help":
		printUsage()
	default:
		cmdRun(args[0])
	}
}

var hiss = color.New(color.FgRed, color.Bold)

func fatal(err error) {
	hiss.Fprint(os.Stderr, "hiss! Error: ")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func cmdRun(path string) {
	if !strings.HasSuffix(path, ".mew") {
		hiss.Fprint(os.Stderr, "hiss! ")
		fmt.Fprintln(os.Stderr, "File must have .mew extension")
		os.Exit(1)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		hiss.Fprint(os.Stderr, "hiss! ")
		fmt.Fprintf(os.Stderr, "File not found: %s\n", path)
		os.Exit(1)
	}

	source := string(content)
	if _, err := interpreter.Interpret(source); err != nil {
		hiss.Fprint(os.Stderr, "hiss! Error: ")
		fmt.Fprintln(os.Stderr, err)
		printErrorContext(source, err)
		os.Exit(1)
	}
}

// printErrorContext shows the offending line with a caret under the
// error's column, when the error carries a location.
func printErrorContext(source string, err error) {
	var mewErr *mewerr.Error
	if !errors.As(err, &mewErr) || !mewErr.Loc.Known() {
		return
	}

	lines := strings.Split(source, "\n")
	if mewErr.Loc.Line < 1 || mewErr.Loc.Line > len(lines) {
		return
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", lines[mewErr.Loc.Line-1])
	if mewErr.Loc.Column > 0 {
		caret := strings.Repeat(" ", mewErr.Loc.Column-1) + "^"
		color.New(color.FgYellow).Fprintln(os.Stderr, caret)
	}
}

func cmdVersion() {
	fmt.Printf("🐱 Mew Programming Language v%s\n", project.CurrentVersion)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latest, err := upgrade.CheckForUpdate(ctx, project.CurrentVersion)
	switch {
	case err != nil:
		fmt.Printf("Failed to check for updates: %s\n", err)
	case latest != "":
		fmt.Printf("A new version is available: v%s\n", latest)
		fmt.Printf("To update, run command: %s\n", upgrade.InstallHint())
	default:
		fmt.Println("You are running the latest version")
	}
}

func cmdUpgrade(args []string) {
	flags := flag.NewFlagSet("upgrade", flag.ExitOnError)
	force := flags.Bool("force", false, "reinstall even when already up to date")
	flags.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	latest, err := upgrade.CheckForUpdate(ctx, project.CurrentVersion)
	if err != nil {
		fatal(err)
	}

	if latest == "" && !*force {
		fmt.Printf("You are already running the latest version (v%s).\n", project.CurrentVersion)
		return
	}
	if latest == "" {
		latest, err = upgrade.LatestVersion(ctx)
		if err != nil {
			fatal(err)
		}
	}

	fmt.Printf("Upgrading to v%s. Run:\n  %s\n", latest, upgrade.InstallHint())
}

func cmdInit(args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		fmt.Print("🐱 Enter project name (default: mew): ")
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		name = strings.TrimSpace(line)
		if name == "" {
			name = "mew"
		}
	}

	if err := project.Scaffold(name); err != nil {
		fatal(err)
	}

	fmt.Printf("🐱 Created new Mew project: %s\n", name)
	fmt.Println("To run your project:")
	fmt.Printf("  cd %s\n", name)
	fmt.Println("  mew start")
}

func cmdStart() {
	config, err := project.Load(project.ConfigFileName)
	if err != nil {
		fatal(fmt.Errorf("could not find mew.toml in current directory"))
	}
	if config.Package.Start == "" {
		fatal(fmt.Errorf("start path not defined in mew.toml"))
	}

	fmt.Printf("🐱 Starting project from: %s\n", config.Package.Start)
	cmdRun(config.Package.Start)
}

func printUsage() {
	fmt.Printf("🐱 Mew Programming Language v%s\n\n", project.CurrentVersion)
	fmt.Println("Usage:")
	fmt.Println("  mew [command] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  <file.mew>       run a script")
	fmt.Println("  init [name]      create a new project")
	fmt.Println("  start            run the project's start file")
	fmt.Println("  version          print version and check for updates")
	fmt.Println("  upgrade [-force] upgrade to the latest release")
	fmt.Println()
	fmt.Println("Run mew without arguments to start the REPL.")
}
