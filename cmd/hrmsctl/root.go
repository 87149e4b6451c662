package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/client"
	"github.com/prasadp25/protecther-hrms-sub001/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	APIURL    string
	UploadURL string
	Timeout   time.Duration
	Token     string
	Yes       bool
	Verbose   bool
}

// cli carries what every subcommand needs.
type cli struct {
	opts   *rootOptions
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (c *cli) client() *client.Client {
	logger := zap.NewNop()
	if c.opts.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	return client.New(c.opts.APIURL,
		client.WithHTTPClient(&http.Client{Timeout: c.opts.Timeout}),
		client.WithToken(c.opts.Token),
		client.WithLogger(logger),
	)
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	defaults := config.ClientConfig{
		APIBaseURL:    "http://localhost:3000/api/v1",
		UploadBaseURL: "http://localhost:3000",
		Timeout:       15 * time.Second,
	}
	if cfg, err := config.Load(); err == nil {
		defaults = cfg.Client
	}

	opts := &rootOptions{}
	c := &cli{opts: opts, in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           "hrmsctl",
		Short:         "Terminal client for the HRMS API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", defaults.APIBaseURL, "API base URL")
	cmd.PersistentFlags().StringVar(&opts.UploadURL, "upload-url", defaults.UploadBaseURL, "host serving uploaded documents")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", defaults.Timeout, "request timeout")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", defaults.Token, "bearer access token (HRMS_TOKEN)")
	cmd.PersistentFlags().BoolVarP(&opts.Yes, "yes", "y", false, "answer yes to confirmation prompts")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(newLoginCmd(c))
	cmd.AddCommand(newEmployeesCmd(c))
	cmd.AddCommand(newSalaryCmd(c))
	return cmd
}

func Execute() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
