package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	jobnavmcp "github.com/laporte-eng/jobnav/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose job lookups to AI assistants over MCP",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve job lookups over MCP on stdio",
	Long: `Serve jobnav's lookups as Model Context Protocol tools on stdin/stdout,
for an assistant configured to launch "jobnav mcp serve".

Tools:
  extract_job_number  job number found in a file name or other text
  resolve_location    path of a job, qc, prints, print, pictures or model
                      target; with open set it is also opened on this machine
  list_ranges         range folders under the projects folder or pictures root

Open failures are notified here the same way the lookup commands notify
them, and are also returned to the assistant as tool errors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resolver == nil || Launcher == nil {
			return fmt.Errorf("resolver and launcher must be initialized before serving MCP")
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		ctx, stop := signal.NotifyContext(parent, os.Interrupt)
		defer stop()

		if err := jobnavmcp.NewServer(Resolver, Launcher, appVersion).Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("serving MCP on stdio: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
