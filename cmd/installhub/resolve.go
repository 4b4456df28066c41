package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	yamlv3 "gopkg.in/yaml.v3"
	"sigs.k8s.io/yaml"

	"hub-install-api/pkg/installmethods"
	"hub-install-api/pkg/versions"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func newResolveCmd() *cobra.Command {
	var file, output string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the install methods of a package context file (JSON or YAML)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != outputJSON && output != outputYAML {
				return fmt.Errorf("unsupported output format %q", output)
			}
			ictx, err := readInstallContext(file)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, installmethods.Resolve(ictx))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "install context file")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format (json or yaml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readInstallContext(path string) (installmethods.PackageInstallContext, error) {
	var ictx installmethods.PackageInstallContext

	data, err := os.ReadFile(path)
	if err != nil {
		return ictx, fmt.Errorf("failed to read install context %s: %w", path, err)
	}
	// YAML is decoded straight into the string fields so unquoted versions
	// like 0.10 keep their literal text.
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &ictx)
	} else {
		err = yamlv3.Unmarshal(data, &ictx)
	}
	if err != nil {
		return ictx, fmt.Errorf("failed to parse install context %s: %w", path, err)
	}
	if ictx.SortedVersions == nil && ictx.Package != nil {
		ictx.SortedVersions = versions.SortNewestFirst(ictx.Package.AvailableVersions)
	}
	return ictx, nil
}

func writeOutput(w io.Writer, format string, out installmethods.Output) error {
	if format == outputYAML {
		// Marshalled through the json tags, same field names as the API.
		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
