package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joanteresajose/reddit-persona/internal/collector"
	"github.com/joanteresajose/reddit-persona/internal/config"
	"github.com/joanteresajose/reddit-persona/internal/llm"
	"github.com/joanteresajose/reddit-persona/internal/persona"
	"github.com/joanteresajose/reddit-persona/internal/pipeline"
	"github.com/joanteresajose/reddit-persona/internal/reddit"
	"github.com/joanteresajose/reddit-persona/internal/storage"
)

// --- analyze ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze <reddit-profile-url>",
	Short: "Analyze a Reddit profile and generate a persona report",
	Long: `Analyze a Reddit profile and generate a persona report.

Examples:
  personad analyze https://www.reddit.com/user/kojied/
  personad analyze https://www.reddit.com/user/Hungry-Move-6603/ --output ./reports
  personad analyze https://www.reddit.com/user/kojied/ --remote`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileURL := args[0]
		outputDir, _ := cmd.Flags().GetString("output")
		remote, _ := cmd.Flags().GetBool("remote")

		if remote {
			return analyzeRemote(cmd.Context(), profileURL)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if outputDir == "" {
			outputDir = cfg.Storage.ReportDir
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		files, err := storage.NewFileStore(outputDir)
		if err != nil {
			return err
		}

		completer, err := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return err
		}

		source := reddit.NewClient(cfg.Reddit.ClientID, cfg.Reddit.ClientSecret, cfg.Reddit.Username)
		extractor := pipeline.New(
			collector.New(source),
			persona.NewAnalyzer(completer),
			store,
			files,
		)

		printStep("Analyzing %s ...", profileURL)
		rec, err := extractor.Extract(cmd.Context(), profileURL)
		if err != nil {
			return err
		}

		printPersonaSummary(rec.ID, rec.Username, rec.ReportPath, rec.Degraded)
		return nil
	},
}

// analyzeRemote sends the analysis request to a running personad server
// instead of driving the pipeline in-process.
func analyzeRemote(ctx context.Context, profileURL string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	printStep("Requesting analysis of %s ...", profileURL)
	resp, err := client.post(ctx, "/api/analyze-reddit", map[string]string{"reddit_url": profileURL})
	if err != nil {
		return err
	}

	var rec struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		FilePath string `json:"file_path"`
		Degraded bool   `json:"degraded"`
	}
	if err := decodeJSON(resp, &rec); err != nil {
		return err
	}

	printPersonaSummary(rec.ID, rec.Username, rec.FilePath, rec.Degraded)
	return nil
}

func init() {
	analyzeCmd.Flags().StringP("output", "o", "", "output directory for the report (default: ./output)")
	analyzeCmd.Flags().Bool("remote", false, "send the request to a running personad server")
}

// --- personas ---

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "Browse previously generated personas",
}

var personasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent personas",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("/api/personas?limit=%d", limit)
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var personas []struct {
			ID        string `json:"id"`
			Username  string `json:"username"`
			CreatedAt string `json:"created_at"`
		}
		if err := decodeJSON(resp, &personas); err != nil {
			return err
		}

		if len(personas) == 0 {
			fmt.Println("No personas found.")
			return nil
		}

		for _, p := range personas {
			fmt.Printf("%s  %s  u/%s\n",
				colorize(colorCyan, p.ID[:8]),
				p.CreatedAt,
				p.Username,
			)
		}
		return nil
	},
}

var personasShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single persona record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/personas/"+args[0])
		if err != nil {
			return err
		}

		var record any
		if err := decodeJSON(resp, &record); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	},
}

var personasDownloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Print the rendered persona report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/download-persona/"+args[0])
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
		}

		_, err = io.Copy(os.Stdout, resp.Body)
		return err
	},
}

func init() {
	personasListCmd.Flags().Int("limit", 20, "maximum number of personas to list")
	personasCmd.AddCommand(personasListCmd)
	personasCmd.AddCommand(personasShowCmd)
	personasCmd.AddCommand(personasDownloadCmd)
}
