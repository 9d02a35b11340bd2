package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swaig/internal/client"
)

const defaultEndpoint = "http://localhost:3000/swaig"

func newClient(endpoint string) (*client.Client, error) {
	var opts []client.Option
	if currentConfig.AuthEnabled() {
		opts = append(opts, client.WithBasicAuth(currentConfig.Username, currentConfig.Password))
	}
	return client.New(endpoint, nil, opts...)
}

func newSignatureCmd() *cobra.Command {
	var endpoint, format string
	cmd := &cobra.Command{
		Use:   "signature [names...]",
		Short: "Fetch the tool catalog from a SWAIG endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(endpoint)
			if err != nil {
				return err
			}
			sigs, err := c.Signature(cmd.Context(), args...)
			if err != nil {
				return fmt.Errorf("fetch signature: %w", err)
			}
			return writeFormatted(cmd.OutOrStdout(), format, sigs)
		},
	}
	cmd.Flags().StringVarP(&endpoint, "url", "u", defaultEndpoint, "SWAIG endpoint URL")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	return cmd
}

func newCallCmd() *cobra.Command {
	var endpoint, rawArgs, rawMeta, token string
	cmd := &cobra.Command{
		Use:   "call <function>",
		Short: "Invoke a tool on a SWAIG endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.CallRequest{Function: args[0], MetaDataToken: token}
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &req.Arguments); err != nil {
					return fmt.Errorf("--args: %w", err)
				}
			}
			if rawMeta != "" {
				if err := json.Unmarshal([]byte(rawMeta), &req.MetaData); err != nil {
					return fmt.Errorf("--meta: %w", err)
				}
			}
			c, err := newClient(endpoint)
			if err != nil {
				return err
			}
			res, err := c.Call(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("call %s: %w", req.Function, err)
			}
			return printCallResult(cmd, res)
		},
	}
	cmd.Flags().StringVarP(&endpoint, "url", "u", defaultEndpoint, "SWAIG endpoint URL")
	cmd.Flags().StringVar(&rawArgs, "args", "", `arguments as a JSON object, e.g. '{"a":2,"b":3}'`)
	cmd.Flags().StringVar(&rawMeta, "meta", "", "meta_data as a JSON object")
	cmd.Flags().StringVar(&token, "token", "", "meta_data_token (random when empty)")
	return cmd
}

func printCallResult(cmd *cobra.Command, res *client.CallResult) error {
	out := cmd.OutOrStdout()
	label := color.New(color.FgGreen, color.Bold)
	body, err := json.MarshalIndent(res.Response, "", "  ")
	if err != nil {
		return err
	}
	label.Fprint(out, "response: ")
	fmt.Fprintln(out, string(body))
	if len(res.SetMetaData) > 0 {
		meta, err := json.MarshalIndent(res.SetMetaData, "", "  ")
		if err != nil {
			return err
		}
		color.New(color.FgCyan, color.Bold).Fprint(out, "set_meta_data: ")
		fmt.Fprintln(out, string(meta))
	}
	return nil
}
