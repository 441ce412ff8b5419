// Package cli implements the cam command line: run, check, disasm and
// trace over a single source file, configured by an optional cam.yaml.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/cam/internal/analyzer"
	"github.com/funvibe/cam/internal/backend"
	"github.com/funvibe/cam/internal/cache"
	"github.com/funvibe/cam/internal/config"
	"github.com/funvibe/cam/internal/lexer"
	"github.com/funvibe/cam/internal/parser"
	"github.com/funvibe/cam/internal/pipeline"
	"github.com/funvibe/cam/internal/resolver"
	"github.com/funvibe/cam/internal/vm"
)

const usage = `usage: cam <command> [-config cam.yaml] <file>

commands:
  run      compile and execute
  check    infer and print the term's type
  disasm   print the compiled bytecode
  trace    execute with a per-transition state trace
`

// DefaultConfigFile is picked up from the working directory when no
// -config flag is given.
const DefaultConfigFile = "cam.yaml"

// Run executes the CLI and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	command := args[0]
	switch command {
	case "run", "check", "disasm", "trace":
	default:
		fmt.Fprint(stderr, usage)
		return 1
	}

	fs := flag.NewFlagSet("cam", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to cam.yaml")
	backendName := fs.String("backend", "vm", "execution backend: vm or tree")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}
	filePath := fs.Arg(0)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		errorf(stderr, "%s", err)
		return 1
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		errorf(stderr, "%s", err)
		return 1
	}

	ctx, err := buildContext(string(source), filePath, cfg)
	if err != nil {
		errorf(stderr, "%s", err)
		return 1
	}

	typecheck := cfg.Typecheck || command == "check"
	stages := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	}
	if typecheck {
		stages = append(stages, &analyzer.TypeProcessor{})
	}
	// check needs no lexical indices; its free identifiers are declared
	// through the typing context rather than as machine globals.
	if command != "check" {
		stages = append(stages, &resolver.ResolverProcessor{})
	}

	ctx = pipeline.New(stages...).Run(ctx)
	if ctx.Failed() {
		for _, diag := range ctx.Errors {
			errorf(stderr, "%s", diag.Error())
		}
		return 1
	}

	switch command {
	case "check":
		fmt.Fprintln(stdout, ctx.InferredType)
		return 0

	case "disasm":
		chunk, err := compile(ctx, cfg)
		if err != nil {
			errorf(stderr, "%s", err)
			return 1
		}
		fmt.Fprint(stdout, vm.Disassemble(chunk, filePath))
		return 0

	case "run":
		if *backendName != "vm" {
			be, err := backend.New(*backendName)
			if err != nil {
				errorf(stderr, "%s", err)
				return 1
			}
			result, err := be.Run(ctx)
			if err != nil {
				errorf(stderr, "%s", err)
				return 1
			}
			fmt.Fprintln(stdout, result.Inspect())
			return 0
		}
		fallthrough

	case "trace":
		chunk, err := compile(ctx, cfg)
		if err != nil {
			errorf(stderr, "%s", err)
			return 1
		}
		machine := vm.New()
		if command == "trace" || cfg.Trace {
			machine.SetTrace(stdout)
			machine.StepLimit = cfg.StepLimit
		}
		result, err := machine.Run(chunk, machineEnv(cfg))
		if err != nil {
			errorf(stderr, "%s", err)
			return 1
		}
		fmt.Fprintln(stdout, result)
		return 0
	}
	return 1
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		} else {
			return &config.Config{}, nil
		}
	}
	return config.Load(path)
}

func buildContext(source, filePath string, cfg *config.Config) (*pipeline.Context, error) {
	ctx := pipeline.NewContext(source)
	ctx.FilePath = filePath
	ctx.Globals = cfg.GlobalNames()
	ctx.GlobalValues = make([]int64, len(cfg.Globals))
	for i, g := range cfg.Globals {
		ctx.GlobalValues[i] = g.Value
	}

	typingCtx, err := cfg.TypingContext()
	if err != nil {
		return nil, err
	}
	ctx.TypingContext = typingCtx
	return ctx, nil
}

// compile compiles the resolved term, going through the chunk cache
// when one is configured.
func compile(ctx *pipeline.Context, cfg *config.Config) (*vm.Chunk, error) {
	if cfg.Cache == "" {
		return vm.NewCompiler(len(cfg.Globals)).Compile(ctx.Resolved)
	}

	store, err := cache.Open(cfg.Cache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	key := cache.Hash(ctx.Source, ctx.Globals...)
	if chunk, ok, err := store.Get(key); err != nil {
		return nil, err
	} else if ok {
		return chunk, nil
	}

	chunk, err := vm.NewCompiler(len(cfg.Globals)).Compile(ctx.Resolved)
	if err != nil {
		return nil, err
	}
	if err := store.Put(key, chunk); err != nil {
		return nil, err
	}
	return chunk, nil
}

func machineEnv(cfg *config.Config) *vm.Env {
	values := make([]vm.Value, len(cfg.Globals))
	for i, g := range cfg.Globals {
		values[i] = vm.IntVal(g.Value)
	}
	return vm.NewEnv(values...)
}

// errorf prints an error line, in red when stderr is a terminal.
func errorf(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		fmt.Fprintf(w, "\x1b[31merror:\x1b[0m %s\n", msg)
		return
	}
	fmt.Fprintf(w, "error: %s\n", msg)
}
