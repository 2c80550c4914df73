package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/chazu/pipeworks/internal/loader"
	"github.com/chazu/pipeworks/internal/server"
	"github.com/chazu/pipeworks/pkg/route"
	"github.com/chazu/pipeworks/pkg/scene"
	"github.com/spf13/cobra"
)

// errInvalidScene marks a scene with blocking validation findings.
var errInvalidScene = errors.New("scene has errors")

func main() {
	rootCmd := &cobra.Command{
		Use:   "pipeworks",
		Short: "Route pipes across three staggered platforms",
	}

	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// routeOptions are the flags of the route command.
type routeOptions struct {
	json     bool
	debug    bool
	verbose  bool
	viewport float64
}

func routeCmd() *cobra.Command {
	var opts routeOptions

	cmd := &cobra.Command{
		Use:   "route [settings-file]",
		Short: "Lay out the scene and print every routed pipe",
		Long: "Lay out the scene and print every routed pipe. The settings file is YAML,\n" +
			"or a scene script when it ends in " + loader.ScriptExt + ". Without a file the defaults are used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd.OutOrStdout(), fileArg(args), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the assembled scene as JSON")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "attach routing debug info to every pipe")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log routing decisions to stderr")
	cmd.Flags().Float64Var(&opts.viewport, "viewport", 0, "viewport width for responsive layout")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [settings-file]",
		Short: "Check the routed scene and report errors and warnings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), fileArg(args))
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [settings-file]",
		Short: "Serve the scene as JSON over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(fileArg(args), port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runRoute(w io.Writer, path string, opts routeOptions) error {
	s, err := loader.Load(path)
	if err != nil {
		return err
	}
	if opts.debug {
		s.Debug.Pipes = true
	}
	if opts.verbose {
		route.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer route.SetLogger(nil)
	}

	sc := scene.Assemble(s, nil, opts.viewport)
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	}

	for _, p := range sc.Pipes {
		fmt.Fprintf(w, "pipe %d: %s, %d points, length %.3f\n",
			p.PlatformID, p.Path.Routing, len(p.Path.Points), route.PolylineLength(p.Path.Points))
		if a := p.Path.Analysis; a != nil && a.RoutingType != p.Path.Routing {
			fmt.Fprintf(w, "  analysis: %s\n", a.RoutingType)
		}
		if p.Path.DebugInfo != nil && opts.debug {
			meta := p.Path.DebugInfo.Metadata
			for _, k := range slices.Sorted(maps.Keys(meta)) {
				fmt.Fprintf(w, "  %s: %s\n", k, meta[k])
			}
		}
	}
	return nil
}

func runValidate(w io.Writer, path string) error {
	s, err := loader.Load(path)
	if err != nil {
		return err
	}
	findings := scene.Validate(scene.Assemble(s, nil, 0))
	for _, f := range findings {
		fmt.Fprintln(w, f.Error())
	}
	if scene.HasErrors(findings) {
		return errInvalidScene
	}
	fmt.Fprintf(w, "ok: %d warnings\n", len(findings))
	return nil
}
