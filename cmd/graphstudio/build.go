package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"graphstudio/internal/codec"
	"graphstudio/internal/domain"
)

func buildCmd(g *globals) *cobra.Command {
	var (
		mode     string
		file     string
		format   string
		directed bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a graph document from a pasted representation",
		Long: "Reads representation text (a JSON object for the chosen mode), has the backend\n" +
			"build the graph and prints the canonical document.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repMode, err := domain.ParseRepMode(mode)
			if err != nil {
				return err
			}

			var exp codec.Exporter
			switch format {
			case "json":
				exp = codec.NewJSONCodec()
			case "yaml":
				exp = codec.NewYAMLCodec()
			default:
				return fmt.Errorf("unknown output format %q", format)
			}

			var text []byte
			if file == "" || file == "-" {
				text, err = io.ReadAll(cmd.InOrStdin())
			} else {
				text, err = os.ReadFile(file)
			}
			if err != nil {
				return err
			}

			ws, _, err := openWorkspace(cmd, g, "")
			if err != nil {
				return err
			}
			defer ws.Close()
			ws.SetDirected(directed)

			run, err := ws.BuildFromRepresentation(cmd.Context(), string(text), repMode)
			if err != nil {
				return err
			}
			return exp.Export(run.Document, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(domain.RepMatrix), "representation: matrix, adjlist or edgelist")
	cmd.Flags().StringVarP(&file, "file", "f", "-", "representation text file")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&directed, "directed", false, "build a directed graph")
	return cmd
}
