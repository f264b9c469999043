// Package cli provides the interactive terminal interface for CampaignForge.
//
// It drives the same orchestrator as the HTTP API through a read-eval loop
// with a handful of session commands; any other input is a conversation turn.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bluereef/campaignforge/internal/flow"
	"github.com/bluereef/campaignforge/internal/models"
	"github.com/bluereef/campaignforge/internal/util"
)

// DefaultOutputDir is where exported campaign reports are written.
const DefaultOutputDir = "outputs"

// CLI runs an interactive campaign conversation on a terminal.
type CLI struct {
	orchestrator *flow.Orchestrator
	in           io.Reader
	out          io.Writer
	outputDir    string
	sessionID    string
}

// Opts holds CLI configuration options.
type Opts struct {
	OutputDir string
	Input     io.Reader
	Output    io.Writer
}

// Option configures the CLI.
type Option func(*Opts)

// WithOutputDir sets the export directory.
func WithOutputDir(dir string) Option {
	return func(o *Opts) {
		if dir != "" {
			o.OutputDir = dir
		}
	}
}

// WithInput sets the input stream. Used by tests.
func WithInput(r io.Reader) Option {
	return func(o *Opts) {
		if r != nil {
			o.Input = r
		}
	}
}

// WithOutput sets the output stream. Used by tests.
func WithOutput(w io.Writer) Option {
	return func(o *Opts) {
		if w != nil {
			o.Output = w
		}
	}
}

// NewCLI creates an interactive interface around the given orchestrator.
func NewCLI(orchestrator *flow.Orchestrator, opts ...Option) *CLI {
	cfg := Opts{
		OutputDir: DefaultOutputDir,
		Input:     os.Stdin,
		Output:    os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CLI{
		orchestrator: orchestrator,
		in:           cfg.Input,
		out:          cfg.Output,
		outputDir:    cfg.OutputDir,
	}
}

// Run starts a session and processes input until quit or EOF.
func (c *CLI) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "🚀 CampaignForge")
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
	fmt.Fprintln(c.out, "Welcome! I'm your AI marketing consultant.")
	fmt.Fprintln(c.out, "I'll help you create a comprehensive social media campaign through conversation.")
	fmt.Fprintln(c.out, "Type 'quit' to exit, 'help' for commands, or 'new' to start over.")
	fmt.Fprintln(c.out)

	if err := c.startSession(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "👤 You: ")
		if !scanner.Scan() {
			fmt.Fprintln(c.out, "\nGoodbye! 👋")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			c.handleQuit(scanner)
			return nil
		case "help":
			c.showHelp()
			continue
		case "new":
			fmt.Fprintln(c.out, "\n🔄 Starting a new conversation...")
			fmt.Fprintln(c.out)
			if err := c.startSession(ctx); err != nil {
				return err
			}
			continue
		case "status":
			c.showStatus()
			continue
		case "export":
			c.exportCampaign()
			continue
		case "":
			fmt.Fprintln(c.out, "Please enter a message or type 'help' for commands.")
			fmt.Fprintln(c.out)
			continue
		}

		resp := c.orchestrator.ContinueSession(ctx, c.sessionID, input)
		if resp.Status == models.ConversationStatusError {
			fmt.Fprintf(c.out, "❌ Error: %s\n\n", resp.Message)
			continue
		}

		fmt.Fprintf(c.out, "\n🤖 Assistant: %s\n", resp.Message)
		if len(resp.Questions) > 0 {
			fmt.Fprintln(c.out, "\n💡 Suggested questions:")
			for _, q := range resp.Questions {
				fmt.Fprintf(c.out, "   • %s\n", q)
			}
		}
		if len(resp.Suggestions) > 0 {
			fmt.Fprintln(c.out, "\n✨ Suggestions:")
			for _, s := range resp.Suggestions {
				fmt.Fprintf(c.out, "   • %s\n", s)
			}
		}
		fmt.Fprintln(c.out)
	}
}

func (c *CLI) startSession(ctx context.Context) error {
	resp, err := c.orchestrator.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	c.sessionID = resp.SessionID
	fmt.Fprintf(c.out, "🤖 Assistant: %s\n\n", resp.Message)
	return nil
}

// handleQuit offers a last-chance export when the campaign is ready.
func (c *CLI) handleQuit(scanner *bufio.Scanner) {
	if _, err := c.orchestrator.GetOutput(c.sessionID); err == nil {
		fmt.Fprint(c.out, "Would you like to export your campaign before leaving? (y/n): ")
		if scanner.Scan() && strings.HasPrefix(strings.ToLower(strings.TrimSpace(scanner.Text())), "y") {
			c.exportCampaign()
		}
	}
	fmt.Fprintln(c.out, "Thanks for using CampaignForge! 👋")
}

func (c *CLI) showStatus() {
	summary, err := c.orchestrator.GetSummary(c.sessionID)
	if err != nil {
		fmt.Fprintf(c.out, "❌ Error getting status: %v\n\n", err)
		return
	}

	fmt.Fprintln(c.out, "\n📊 Conversation Status:")
	fmt.Fprintf(c.out, "   • Session ID: %s...\n", shortID(summary.SessionID))
	fmt.Fprintf(c.out, "   • Current Stage: %s\n", stageTitle(summary.Stage))
	fmt.Fprintf(c.out, "   • Progress: %.1f%%\n", summary.Progress*100)
	fmt.Fprintf(c.out, "   • Messages Exchanged: %d\n", summary.MessageCount)
	fmt.Fprintf(c.out, "   • Insights Collected: %d\n", len(summary.InsightsCollected))
	if len(summary.InsightsCollected) > 0 {
		fmt.Fprintf(c.out, "   • Available Data: %s\n", strings.Join(summary.InsightsCollected, ", "))
	}
	fmt.Fprintln(c.out)
}

// campaignExport is the JSON document written by the export command.
type campaignExport struct {
	SessionInfo struct {
		SessionID   string    `json:"session_id"`
		Company     string    `json:"company"`
		GeneratedAt time.Time `json:"generated_at"`
	} `json:"session_info"`
	Campaign            *models.CampaignOutput `json:"campaign"`
	ConversationSummary *models.SessionSummary `json:"conversation_summary"`
	PerformanceReport   util.CampaignReport    `json:"performance_report"`
}

func (c *CLI) exportCampaign() {
	output, err := c.orchestrator.GetOutput(c.sessionID)
	if err != nil {
		if errors.Is(err, models.ErrOutputNotReady) {
			fmt.Fprintln(c.out, "❌ Campaign not ready: finish content creation first.")
		} else {
			fmt.Fprintf(c.out, "❌ Campaign not ready: %v\n", err)
		}
		fmt.Fprintln(c.out)
		return
	}
	summary, err := c.orchestrator.GetSummary(c.sessionID)
	if err != nil {
		fmt.Fprintf(c.out, "❌ Export failed: %v\n\n", err)
		return
	}

	platforms := make([]string, 0)
	for _, p := range summary.Goals.TargetPlatforms {
		platforms = append(platforms, string(p))
	}

	var export campaignExport
	export.SessionInfo.SessionID = c.sessionID
	export.SessionInfo.Company = summary.Profile.Name
	export.SessionInfo.GeneratedAt = time.Now().UTC()
	export.Campaign = output
	export.ConversationSummary = summary
	export.PerformanceReport = util.CreateCampaignReport(
		summary.Profile.Name,
		string(summary.Goals.PrimaryObjective),
		platforms,
		summary.Goals.DurationWeeks,
		output.Posts)

	if err := os.MkdirAll(c.outputDir, 0755); err != nil {
		fmt.Fprintf(c.out, "❌ Export failed: %v\n\n", err)
		return
	}
	filename := fmt.Sprintf("campaign_%s_%s.json", shortID(c.sessionID), time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(c.outputDir, filename)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		fmt.Fprintf(c.out, "❌ Export failed: %v\n\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Fprintf(c.out, "❌ Export failed: %v\n\n", err)
		return
	}

	slog.Info("CLI.exportCampaign: campaign exported", "path", path, "posts", len(output.Posts))
	fmt.Fprintf(c.out, "✅ Campaign exported to: %s\n", path)
	fmt.Fprintf(c.out, "   • %d posts included\n", len(output.Posts))
	fmt.Fprintln(c.out, "   • Complete strategy and implementation guide")
	fmt.Fprintln(c.out)
}

func (c *CLI) showHelp() {
	fmt.Fprintln(c.out, "\n📖 Available Commands:")
	fmt.Fprintln(c.out, "   • help     - Show this help message")
	fmt.Fprintln(c.out, "   • status   - Show current conversation status")
	fmt.Fprintln(c.out, "   • export   - Export your campaign to a file")
	fmt.Fprintln(c.out, "   • new      - Start a new conversation")
	fmt.Fprintln(c.out, "   • quit     - Exit the application")
	fmt.Fprintln(c.out, "\n💡 Tips:")
	fmt.Fprintln(c.out, "   • Be specific about your business and goals")
	fmt.Fprintln(c.out, "   • Answer questions thoroughly for better results")
	fmt.Fprintln(c.out, "   • Ask for clarification if you need help")
	fmt.Fprintln(c.out, "   • The AI learns about your brand through conversation")
	fmt.Fprintln(c.out)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// stageTitle renders a stage name for display, e.g. "Strategy Development".
func stageTitle(stage models.Stage) string {
	words := strings.Split(string(stage), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
