package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func convertCmd(g *globals) *cobra.Command {
	var graphPath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the adjacency matrix, adjacency list and edge list of a graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := openWorkspace(cmd, g, graphPath)
			if err != nil {
				return err
			}
			defer ws.Close()

			run, err := ws.Convert(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), run.Text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph document (.json, .yaml or - for stdin)")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}
