package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inodb/vrs-go/internal/digest"
	"github.com/inodb/vrs-go/internal/vrs"
)

// newIdentifyCmd computes a GA4GH identifier for a standalone VRS object
// read from a JSON file (spec §4.3, §6.4). It dispatches on the object's
// "type" field since the identifier algorithm differs by entity kind.
func newIdentifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identify <object.json>",
		Short: "Print the GA4GH identifier of a VRS object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := identifyFile(args[0])
			if err != nil {
				return exitError(ExitUsage, err)
			}
			fmt.Println(id)
			return nil
		},
	}
	return cmd
}

type typedObject struct {
	Type string `json:"type"`
}

func identifyFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var probe typedObject
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}

	switch probe.Type {
	case "Allele":
		var a vrs.Allele
		if err := json.Unmarshal(raw, &a); err != nil {
			return "", fmt.Errorf("parse Allele: %w", err)
		}
		return a.Identify()
	case "SequenceLocation":
		var l vrs.SequenceLocation
		if err := json.Unmarshal(raw, &l); err != nil {
			return "", fmt.Errorf("parse SequenceLocation: %w", err)
		}
		return digest.Identify(l)
	case "CopyNumberCount":
		var c vrs.CopyNumberCount
		if err := json.Unmarshal(raw, &c); err != nil {
			return "", fmt.Errorf("parse CopyNumberCount: %w", err)
		}
		return digest.Identify(c)
	case "CopyNumberChange":
		var c vrs.CopyNumberChange
		if err := json.Unmarshal(raw, &c); err != nil {
			return "", fmt.Errorf("parse CopyNumberChange: %w", err)
		}
		return digest.Identify(c)
	default:
		return "", fmt.Errorf("%s: unrecognized or missing \"type\" field %q", path, probe.Type)
	}
}
