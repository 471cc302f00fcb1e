package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
	"github.com/abdul-hamid-achik/fetchkit/packages/query"
	"github.com/abdul-hamid-achik/fetchkit/packages/verify"
)

var requestCmd = &cobra.Command{
	Use:   "request <url>",
	Short: "Issue a single HTTP request",
	Long: `Issue a single fetch-style HTTP request and print the response.

Examples:
  fetchkit request https://api.example.com/users
  fetchkit request https://api.example.com/users -X POST -d '{"name":"ada"}'
  fetchkit request https://api.example.com/users -H "X-Token: abc" -H "X-Token: def"
  fetchkit request https://api.example.com/users --extract "0.name"
  fetchkit request https://api.example.com/users --record session.db
  fetchkit request https://api.example.com/users --replay session.db`,
	Args: cobra.ExactArgs(1),
	RunE: requestCommand,
}

var (
	reqClientFlags clientFlags
	methodFlag     string
	headerFlags    []string
	bodyFlag       string
	bodyFileFlag   string
	extractFlag    string
	schemaFlag     string
	failFlag       bool
	verboseFlag    bool
	noColorFlag    bool
)

func init() {
	requestCmd.Flags().StringVarP(&methodFlag, "method", "X", "", "HTTP method (default GET)")
	requestCmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, `header line "Name: value" (repeatable, order kept)`)
	requestCmd.Flags().StringVarP(&bodyFlag, "body", "d", "", "request body")
	requestCmd.Flags().StringVar(&bodyFileFlag, "body-file", "", "read request body from file")
	requestCmd.Flags().StringVar(&extractFlag, "extract", "", "print only this gjson path of the response body")
	requestCmd.Flags().StringVar(&schemaFlag, "schema", "", "validate the response body against a JSON Schema file")
	requestCmd.Flags().BoolVar(&failFlag, "fail", false, "exit with an error on non-2xx responses")
	requestCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "print response headers")
	requestCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	addClientFlags(requestCmd, &reqClientFlags)
}

func addClientFlags(cmd *cobra.Command, f *clientFlags) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to config file")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "request timeout (e.g. 5s)")
	cmd.Flags().BoolVar(&f.insecure, "insecure", false, "skip TLS certificate validation")
	cmd.Flags().StringVar(&f.proxy, "proxy", "", "proxy URL")
	cmd.Flags().StringVar(&f.recordPath, "record", "", "record exchanges into this SQLite file")
	cmd.Flags().StringVar(&f.replayPath, "replay", "", "serve responses from this SQLite file instead of the network")
}

func requestCommand(cmd *cobra.Command, args []string) error {
	if noColorFlag {
		color.NoColor = true
	}

	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return err
	}

	opts := &fetch.RequestOptions{Method: methodFlag, Headers: headers}
	switch {
	case bodyFlag != "":
		opts.Body = bodyFlag
	case bodyFileFlag != "":
		data, err := os.ReadFile(bodyFileFlag)
		if err != nil {
			return fmt.Errorf("failed to read body file: %w", err)
		}
		opts.Body = data
	}

	client, cleanup, err := reqClientFlags.build()
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := client.Do(context.Background(), args[0], opts)
	if err != nil {
		return err
	}

	printStatus(cmd, resp)

	if verboseFlag {
		resp.Headers.Each(func(name, value string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, value)
		})
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if schemaFlag != "" {
		result, err := verify.ValidateFile(resp, schemaFlag)
		if err != nil {
			return err
		}
		if !result.Valid {
			red := color.New(color.FgRed).SprintFunc()
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", red("schema:"), msg)
			}
			return fmt.Errorf("response does not match schema %s", schemaFlag)
		}
	}

	if extractFlag != "" {
		value, ok := query.NewExtractor(resp).Extract(query.Spec{Source: query.SourceBody, Path: extractFlag})
		if !ok {
			return fmt.Errorf("nothing found at path %q", extractFlag)
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatValue(value))
	} else {
		printBody(cmd, resp)
	}

	if failFlag && !resp.OK() {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}

func printStatus(cmd *cobra.Command, resp *fetch.Response) {
	statusColor := color.New(color.FgRed)
	switch {
	case resp.OK():
		statusColor = color.New(color.FgGreen)
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		statusColor = color.New(color.FgYellow)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
		statusColor.Sprintf("%d %s", resp.StatusCode, resp.Status),
		color.New(color.Faint).Sprintf("(%dms)", resp.DurationMs()))
}

func printBody(cmd *cobra.Command, resp *fetch.Response) {
	text := resp.Text()
	if text == "" {
		return
	}

	if resp.IsJSON() {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, []byte(text), "", "  "); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
