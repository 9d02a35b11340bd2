package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"swaig/internal/server"
	"swaig/internal/swaig"
)

func newToolsCmd() *cobra.Command {
	var format, host string
	cmd := &cobra.Command{
		Use:   "tools [names...]",
		Short: "Print the catalog of the bundled tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, _, err := buildDispatcher(currentConfig)
			if err != nil {
				return err
			}
			u := url.URL{Scheme: "https", Host: host, Path: server.SWAIGPath}
			if currentConfig.AuthEnabled() {
				u.User = url.UserPassword(currentConfig.Username, currentConfig.Password)
			}
			req := swaig.Request{"action": swaig.ActionGetSignature}
			if len(args) > 0 {
				names := make([]any, len(args))
				for i, a := range args {
					names[i] = a
				}
				req["functions"] = names
			}
			return writeFormatted(cmd.OutOrStdout(), format, dispatcher.Catalog(req, u.String()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or yaml")
	cmd.Flags().StringVar(&host, "host", "localhost:3000", "host used in web_hook_url")
	return cmd
}
