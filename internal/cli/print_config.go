package cli

import (
	"github.com/rollnote/rollnote/internal/vault"
)

func cmdPrintConfig(o *IO, cfg vault.Config, sources vault.ConfigSources) error {
	formatted, err := vault.FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	if sources.Global != "" {
		o.Println("# global config:", sources.Global)
	}

	if sources.Project != "" {
		o.Println("# project config:", sources.Project)
	}

	return nil
}
