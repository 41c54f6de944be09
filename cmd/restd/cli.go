package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/app"
	"github.com/xy-planning-network/rest/config"
	"github.com/xy-planning-network/rest/negotiation"
)

func run(args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "restd",
		Short:         "Serve a REST API rendering responses and errors in the negotiated format",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newServeCmd(),
		newValidateCmd(),
		newNegotiateCmd(),
	)
	return cmd
}

type commonOptions struct {
	cfgPath  string
	envFiles []string
}

func addCommonFlags(cmd *cobra.Command, opts *commonOptions) {
	fs := cmd.Flags()
	fs.StringVarP(&opts.cfgPath, "config", "c", "rest.yaml", "config yaml or toml path")
	fs.StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, ".env files to load")
}

// loadConfig loads the .env files then the config file.
// A missing config file falls back to the defaults.
func loadConfig(opts commonOptions) (*config.Config, error) {
	if err := config.LoadEnv(opts.envFiles...); err != nil {
		return nil, err
	}

	if _, err := os.Stat(opts.cfgPath); errors.Is(err, os.ErrNotExist) {
		return config.Parse(nil, ".yaml")
	}

	return config.Load(opts.cfgPath)
}

func newServeCmd() *cobra.Command {
	var opts commonOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the example reports service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}

			newReports(a).routes()
			return a.Guide()
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func newValidateCmd() *cobra.Command {
	var opts commonOptions
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the config file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			if _, err := app.New(cfg); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "configuration ok")
			return err
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

type negotiateOptions struct {
	commonOptions
	accept string
	method string
	path   string
	format string
}

func newNegotiateCmd() *cobra.Command {
	var opts negotiateOptions
	cmd := &cobra.Command{
		Use:   "negotiate",
		Short: "Print the version and format negotiated for a request",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNegotiate(cmd, opts)
		},
	}
	addCommonFlags(cmd, &opts.commonOptions)
	fs := cmd.Flags()
	fs.StringVar(&opts.accept, "accept", "*/*", "Accept header of the request")
	fs.StringVar(&opts.method, "method", http.MethodGet, "HTTP method of the request")
	fs.StringVar(&opts.path, "path", "/", "path of the request")
	fs.StringVar(&opts.format, "format", "", "_format attribute of the request")
	return cmd
}

func runNegotiate(cmd *cobra.Command, opts negotiateOptions) error {
	cfg, err := loadConfig(opts.commonOptions)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	n, err := cfg.Negotiator(reg)
	if err != nil {
		return err
	}

	e, err := cfg.Extractor()
	if err != nil {
		return err
	}

	r, err := http.NewRequest(strings.ToUpper(opts.method), opts.path, nil)
	if err != nil {
		return fmt.Errorf("%w: %s", rest.ErrNotValid, err)
	}
	r.Header.Set("Accept", opts.accept)

	ctx, attrs := rest.NewAttributesContext(r.Context())
	if opts.format != "" {
		attrs.Set(rest.FormatAttr, opts.format)
	}
	r = r.WithContext(ctx)

	v := e.Extract(r)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "version: %q (set: %t)\n", v.String(), v.IsSet())

	res, err := n.Negotiate(r, v)
	switch {
	case err == nil:
		fmt.Fprintf(out, "format: %s\nmedia type: %s\n", res.Format.Name, res.MediaType)
	case errors.Is(err, negotiation.ErrStopNegotiation):
		fmt.Fprintf(out, "stopped: %s\n", err)
	default:
		fmt.Fprintf(out, "not acceptable: %s\n", err)
	}

	return nil
}
