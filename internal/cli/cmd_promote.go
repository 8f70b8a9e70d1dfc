package cli

import (
	"errors"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/rollnote/rollnote/internal/baseline"
)

var (
	errPromoteArgs    = errors.New("promote needs --out and --baseline")
	errPromoteAborted = errors.New("promote aborted")
)

// cmdPromote accepts the latest verified output as the new baseline. The old
// baseline is removed wholesale, so the command confirms interactively unless
// -y is given.
func cmdPromote(o *IO, workDir string, args []string) error {
	flagSet := flag.NewFlagSet("promote", flag.ContinueOnError)
	flagSet.SetOutput(o.errOut)
	flagSet.Usage = func() {
		o.Printf("Usage: rollnote promote --out <dir> --baseline <dir> [-y]\n\n")
		o.Printf("Replace the baseline tree wholesale with the latest output.\n")
	}

	out := flagSet.String("out", "", "Latest output tree")
	base := flagSet.String("baseline", "", "Baseline tree to replace")
	yes := flagSet.BoolP("yes", "y", false, "Skip confirmation")

	if hasHelpFlag(args) {
		flagSet.Usage()

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *out == "" || *base == "" {
		return errPromoteArgs
	}

	latest := resolve(workDir, *out)
	baseRoot := resolve(workDir, *base)

	if !*yes {
		ok, err := confirm("Replace baseline " + baseRoot + " with " + latest + "? [y/N] ")
		if err != nil {
			return err
		}

		if !ok {
			return errPromoteAborted
		}
	}

	if err := baseline.Promote(latest, baseRoot); err != nil {
		return err
	}

	o.Println("baseline replaced:", baseRoot)

	return nil
}

// confirm asks a y/N question on the controlling terminal.
func confirm(prompt string) (bool, error) {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)

	answer, err := line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return false, nil
		}

		return false, err
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes", nil
}
