// Command clarice runs Clarice scripts and hosts the interactive REPL.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	clarice "github.com/AeriaVelocity/clarice"
)

const (
	appName    = "clarice"
	promptMain = ">>> "
	promptCont = "... "
)

var banner = fmt.Sprintf("Clarice %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", clarice.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "version":
		fmt.Printf("clarice %s (built %s)\n", clarice.Version, clarice.BuildDate)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Clarice %s

Usage:
  %s run <file.clrs>           Run a script.
  %s repl                      Start the REPL.
  %s fmt [--write] <file.clrs> Print (or rewrite) a script in canonical form.
  %s version                   Print the compiled version.

Common flags:
  --config <path>              Config file (default ~/%s)
`, clarice.Version, appName, appName, appName, appName, configFileName)
}

// setup parses the shared flags out of args and builds the logger. The
// returned args have the flags removed.
func setup(name string, args []string) ([]string, *slog.Logger, func(), error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file path")
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open log file: %w", err)
	}
	historyPath = cfg.HistoryFile
	return fs.Args(), logger, closeLog, nil
}

// historyPath is resolved from config during setup.
var historyPath string

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	rest, logger, closeLog, err := setup("run", args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	defer closeLog()

	if len(rest) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.clrs>\n", appName)
		return 2
	}
	file := rest[0]

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	logger.Debug("running script", "path", file, "bytes", len(src))

	ip := clarice.NewInterpreter()
	prog, perr := clarice.Parse(string(src))
	if perr != nil {
		fmt.Fprintln(os.Stderr, red(clarice.WrapErrorWithName(perr, filepath.Base(file), string(src)).Error()))
		return 1
	}
	if _, rerr := ip.RunProgram(prog, clarice.NewEnv(ip.Global)); rerr != nil {
		fmt.Fprintln(os.Stderr, red(clarice.WrapErrorWithName(rerr, filepath.Base(file), string(src)).Error()))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	write := fs.Bool("write", false, "rewrite the file instead of printing")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s fmt [--write] <file.clrs>\n", appName)
		return 2
	}
	file := fs.Arg(0)

	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	prog, perr := clarice.Parse(string(src))
	if perr != nil {
		fmt.Fprintln(os.Stderr, red(clarice.WrapErrorWithName(perr, filepath.Base(file), string(src)).Error()))
		return 1
	}

	out := clarice.FormatProgram(prog) + "\n"
	if *write {
		if err := os.WriteFile(file, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, file, err)
			return 1
		}
		return 0
	}
	fmt.Print(out)
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	_, logger, closeLog, err := setup("repl", args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	defer closeLog()

	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := clarice.NewInterpreter()
	logger.Debug("repl started", "history", historyPath)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(clarice.FormatValue(v)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe gathers lines until they parse, or until the parse error
// is a genuine failure rather than an incomplete construct.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := clarice.ParseInteractive(src); perr == nil || !clarice.IsIncomplete(perr) {
			return src, true
		}
	}
}
