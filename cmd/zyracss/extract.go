package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zyracss/common"
	"zyracss/parser"
	"zyracss/zyra"
)

func newExtractCmd() *cobra.Command {
	var (
		includeInvalid bool
		maxClasses     int
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Extract candidate class tokens from HTML or source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandPaths(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				common.LogError("no input files matched")
				return errors.New("no-files-found")
			}
			blobs, _, readErr := readFiles(files)
			if readErr != nil {
				return readErr
			}

			result, exErr := zyra.Extract(blobs, parser.ExtractOptions{
				IncludeInvalid: includeInvalid,
				MaxClasses:     maxClasses,
			})
			if exErr != nil {
				common.LogError("%s: %s", exErr.Code, exErr.Message)
				return errors.New("input-too-large")
			}

			if asJSON {
				payload, _ := json.MarshalIndent(result, "", "  ")
				fmt.Println(string(payload))
				return nil
			}
			for _, class := range result.Classes {
				fmt.Println(class)
			}
			for _, inv := range result.Invalid {
				fmt.Fprintf(os.Stderr, "invalid: %s (%s)\n", inv.ClassName, inv.Code)
			}
			if result.Truncated {
				common.Warning("class list truncated")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeInvalid, "include-invalid", false, "report shape-matching tokens that fail to parse")
	cmd.Flags().IntVar(&maxClasses, "max-classes", 0, "cap the extracted class list (0 = default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the result as JSON")
	return cmd
}
