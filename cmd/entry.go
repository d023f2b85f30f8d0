package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"quill/config"
	"quill/interpreter"
	"quill/object"
	"quill/parser"
	"quill/repl"
	"quill/stdlib"
)

const Version = "0.3.0"

// exit statuses
const (
	exitOK = iota
	exitFailure
	exitUsage
)

type (
	// Stdio carries the streams a command reads from and writes to.
	Stdio struct {
		In  io.Reader
		Out io.Writer
		Err io.Writer
	}

	CommandFunc func(args []string, stdio Stdio) int

	FlagInfo struct {
		Name        string
		Description string
	}

	CommandInfo struct {
		Description string
		Function    CommandFunc
		Flags       []FlagInfo
	}
)

var commonFlags = []FlagInfo{
	{
		Name:        "-config",
		Description: "config file path (default $HOME/" + config.FileName + ")",
	},
	{
		Name:        "-debug",
		Description: "log diagnostics to stderr",
	},
}

var commands map[string]CommandInfo

func init() {
	commands = map[string]CommandInfo{
		"run": {
			Description: "Takes the filepath of program, and executes it",
			Function:    Run,
			Flags: append([]FlagInfo{
				{
					Name:        "-f",
					Description: "program file path",
				},
			}, commonFlags...),
		},
		"repl": {
			Description: "Starts an interactive session",
			Function:    Repl,
			Flags: append([]FlagInfo{
				{
					Name:        "-plain",
					Description: "read lines without terminal editing, also used when stdin is not a terminal",
				},
			}, commonFlags...),
		},
		"help": {
			Description: "Prints the usage of all commands",
			Function:    Help,
			Flags:       []FlagInfo{},
		},
		"version": {
			Description: "Prints the version",
			Function:    PrintVersion,
			Flags:       []FlagInfo{},
		},
	}
}

func formatCommand(name string, cmd CommandInfo, indent string) string {
	out := fmt.Sprintf("%s\033[1;36m%v\033[0m\n", indent, name)
	out += fmt.Sprintf("%s  \033[1;37mDescription:\033[0m \033[0;37m%v\033[0m\n", indent, cmd.Description)

	if len(cmd.Flags) > 0 {
		out += indent + "  \033[1;37mFlags:\033[0m\n"
		for _, flag := range cmd.Flags {
			out += fmt.Sprintf("%s    \033[1;33m%v\033[0m - \033[0;37m%v\033[0m\n", indent, flag.Name, flag.Description)
		}
	} else {
		out += indent + "  \033[0;37m(No flags available)\033[0m\n"
	}
	return out
}

func Help(args []string, stdio Stdio) int {
	if len(args) > 1 {
		fmt.Fprintln(stdio.Err, "ERROR: help takes at most one command name")
		return exitUsage
	}

	if len(args) == 1 {
		// print the help of the specified command
		cmd, ok := commands[args[0]]
		if !ok {
			fmt.Fprintf(stdio.Err, "ERROR: unknown command %v, check help for manual.\n", args[0])
			return exitUsage
		}
		fmt.Fprintln(stdio.Out, "\n\033[1;35mCommand:\033[0m")
		fmt.Fprintln(stdio.Out, formatCommand(args[0], cmd, ""))
		return exitOK
	}

	// show the whole help catalog
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	printResult := "\n\033[1;35mSupported Commands:\033[0m\n\n"
	for _, name := range names {
		printResult += formatCommand(name, commands[name], "  ") + "\n"
	}
	fmt.Fprintln(stdio.Out, printResult)
	return exitOK
}

func PrintVersion(args []string, stdio Stdio) int {
	fmt.Fprintf(stdio.Out, "quill %s\n", Version)
	return exitOK
}

// commonOptions holds the flags shared by run and repl.
type commonOptions struct {
	configPath string
	debug      bool
}

func (o *commonOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "config file path")
	fs.BoolVar(&o.debug, "debug", false, "log diagnostics to stderr")
}

func (o *commonOptions) logger(w io.Writer) *slog.Logger {
	if !o.debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *commonOptions) load(logger *slog.Logger) (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "path", cfg.Path, "max_depth", cfg.MaxDepth)
	return cfg, nil
}

func Run(args []string, stdio Stdio) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	fileTarget := fs.String("f", "", "program file path")
	var common commonOptions
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *fileTarget == "" {
		fmt.Fprintln(stdio.Err, "ERROR: provide the filepath flag -f to assign the path to it")
		return exitUsage
	}

	logger := common.logger(stdio.Err)
	cfg, err := common.load(logger)
	if err != nil {
		fmt.Fprintln(stdio.Err, "ERROR:", err)
		return exitFailure
	}

	byteContent, err := os.ReadFile(*fileTarget)
	if err != nil {
		fmt.Fprintln(stdio.Err, "ERROR:", fmt.Errorf("run: read %s: %w", *fileTarget, err))
		return exitFailure
	}

	start := time.Now()
	program, errs := parser.Parse(*fileTarget, string(byteContent))
	logger.Debug("parsed", "file", *fileTarget, "statements", len(program.Statements), "errors", len(errs), "duration", time.Since(start))
	if len(errs) != 0 {
		for _, err := range errs {
			fmt.Fprintln(stdio.Err, err)
		}
		return exitFailure
	}

	start = time.Now()
	interp := interpreter.New(stdlib.New(stdio.Out), cfg.InterpreterOptions()...)
	result := interp.Eval(program, object.NewEnvironment(nil))
	logger.Debug("evaluated", "file", *fileTarget, "result", result.Type(), "duration", time.Since(start))

	if result.Type() == object.ERROR_OBJ {
		fmt.Fprintln(stdio.Err, result.Inspect())
		return exitFailure
	}
	if result != object.NULL {
		fmt.Fprintln(stdio.Out, result.Inspect())
	}
	return exitOK
}

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok || f != os.Stdin {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func Repl(args []string, stdio Stdio) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	plain := fs.Bool("plain", false, "read lines without terminal editing")
	var common commonOptions
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := common.logger(stdio.Err)
	cfg, err := common.load(logger)
	if err != nil {
		fmt.Fprintln(stdio.Err, "ERROR:", err)
		return exitFailure
	}
	opts := repl.Options{Config: cfg, Logger: logger}

	start := func() error { return repl.StartInteractive(opts) }
	if *plain || !isTerminal(stdio.In) {
		start = func() error { return repl.Start(stdio.In, stdio.Out, opts) }
	}
	if err := start(); err != nil {
		fmt.Fprintln(stdio.Err, "ERROR:", err)
		return exitFailure
	}
	return exitOK
}

// Dispatch runs the command named by args[0] and returns its exit status.
func Dispatch(args []string, stdio Stdio) int {
	if len(args) < 1 {
		fmt.Fprintln(stdio.Err, "ERROR: at least provide command name to kick off the cli")
		return exitUsage
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stdio.Err, "ERROR: unknown command %v, check help for manual.\n", name)
		return exitUsage
	}

	status := cmd.Function(args[1:], stdio)
	if status == exitUsage {
		fmt.Fprintf(stdio.Err, "run `help %s` for usage\n", name)
	}
	return status
}

func Execute() int {
	return Dispatch(os.Args[1:], Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}
