// Package cli is the command surface of rollnote: global flags, config
// resolution, and dispatch to the convert, verify, promote, and print-config
// commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rollnote/rollnote/internal/vault"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// ErrFlagRequiresArg means a global flag was given without its value.
var ErrFlagRequiresArg = errors.New("flag requires an argument")

// Run is the main entry point. Returns exit code.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Default workDir to current directory
	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	overrides := vault.Config{Extension: flags.extension}

	cfg, sources, err := vault.LoadConfig(workDir, flags.configPath, overrides, env)
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	ioCtx := NewIO(out, errOut)

	var cmdErr error

	switch cmd {
	case "convert":
		cmdErr = cmdConvert(ioCtx, cfg, workDir, flags.remaining[1:])
	case "verify":
		cmdErr = cmdVerify(ioCtx, cfg, workDir, flags.remaining[1:])
	case "promote":
		cmdErr = cmdPromote(ioCtx, workDir, flags.remaining[1:])
	case "print-config":
		cmdErr = cmdPrintConfig(ioCtx, cfg, sources)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	return 0
}

type globalFlags struct {
	workDir    string
	configPath string
	extension  string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok && arg != "-C" {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --extension flag
	if arg == "--extension" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.extension = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--extension="); ok {
		flags.extension = after

		return consumedOne, nil
	}

	return consumedNone, nil
}

// resolve makes a path absolute relative to the working directory.
func resolve(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

func printUsage(w io.Writer) {
	fprintln(w, "rollnote converts a sourcebook text archive into an Obsidian vault")
	fprintln(w, "of notes whose random tables roll themselves.")
	fprintln(w)
	fprintln(w, "Usage: rollnote [global flags] <command> [args]")
	fprintln(w)
	fprintln(w, "Commands:")
	fprintln(w, "  convert <source> <vault>   Convert a zip archive or directory into a vault")
	fprintln(w, "  verify [flags]             Convert from dir and zip sources and compare the outputs")
	fprintln(w, "  promote [flags]            Replace the baseline tree with the latest output")
	fprintln(w, "  print-config               Show resolved configuration")
	fprintln(w)
	fprintln(w, "Global flags:")
	fprintln(w, "  -C, --cwd <dir>            Working directory")
	fprintln(w, "  -c, --config <file>        Config file (default: .rollnote.json)")
	fprintln(w, "  --extension <ext>          Article extension in the source (default: txt)")
	fprintln(w, "  -h, --help                 Show this help")
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
