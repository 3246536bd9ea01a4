package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"graphstudio/internal/render"
	"graphstudio/internal/service"
)

func playCmd(g *globals) *cobra.Command {
	var (
		graphPath string
		params    service.Params
		delay     time.Duration
		summary   bool
	)

	cmd := &cobra.Command{
		Use:   "play <operation>",
		Short: "Run an algorithm on a graph file and replay it in the terminal",
		Long: "Imports a graph document, asks the backend to run the algorithm and replays\n" +
			"the highlights step by step.\n\nOperations: " + strings.Join(service.Operations, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: service.Operations,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := openWorkspace(cmd, g, graphPath)
			if err != nil {
				return err
			}
			defer ws.Close()

			if cmd.Flags().Changed("delay") {
				s := ws.Settings()
				s.StepDelay = delay
				ws.ApplySettings(s)
			}

			term := render.NewTerminal(cmd.OutOrStdout())
			events := make(chan service.Event, 4096)
			ws.Bus().Subscribe(events)
			defer ws.Bus().Unsubscribe(events)

			ctx, stop := context.WithCancel(cmd.Context())
			printed := make(chan struct{})
			go func() {
				defer close(printed)
				term.Run(ctx, events)
			}()

			run, err := ws.RunNamed(cmd.Context(), args[0], params)
			stop()
			<-printed
			if err != nil {
				return err
			}

			if run.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), render.Brand.Sprint(run.Message))
			}
			if summary {
				term.Summary(ws.Snapshot())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph document (.json, .yaml or - for stdin)")
	cmd.Flags().StringVar(&params.Source, "source", "", "source node label")
	cmd.Flags().StringVar(&params.Target, "target", "", "target node label")
	cmd.Flags().StringVar(&params.Method, "method", "", "traversal method: bfs or dfs")
	cmd.Flags().StringVar(&params.Algorithm, "algorithm", "", "mst: kruskal or prim; euler: fleury or hierholzer")
	cmd.Flags().StringVar(&params.Start, "start", "", "euler start node label")
	cmd.Flags().DurationVar(&delay, "delay", 0, "pause after each step (overrides config)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print node and edge tables after the replay")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}
