package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/pkg/core"
)

var (
	assistMode      string
	assistSender    string
	assistRecipient string
	assistType      string
)

// assistCmd represents the assist command
var assistCmd = &cobra.Command{
	Use:   "assist <text>",
	Short: "Organise a free-text report with Gemini",
	Long: `Send a free-text report to Gemini and print the suggested protocol fields
(title, category, priority, executive summary).

With --sender and --recipient the suggestion is registered as a new
protocol. Modes "summarize" and "category" print a rewritten description or
a one-word category instead. Requires GEMINI_API_KEY.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		switch assistMode {
		case "summarize", "category":
			runAssistText(ctx, args[0])
			return
		case "extract", "":
		default:
			fatal("Invalid --mode", fmt.Errorf("unknown mode %q", assistMode))
		}

		a := openApp(ctx, cmd, true)
		s, err := a.Assist(ctx, args[0])
		if err != nil {
			fatal(a.Snapshot().Notice, err)
		}

		if assistSender == "" || assistRecipient == "" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(s); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		typ, err := core.ParseType(assistType)
		if err != nil {
			fatal("Invalid --type", err)
		}
		a.EditDraft(func(d *core.Draft) {
			d.Sender = assistSender
			d.Recipient = assistRecipient
			d.Type = typ
		})
		p, err := a.Submit(ctx)
		if err != nil {
			fatal("Failed to create protocol", err)
		}
		fmt.Printf("%s %s\n", p.Code, p.ID)
	},
}

func runAssistText(ctx context.Context, text string) {
	assistant, err := newAssistant(ctx)
	if err != nil {
		fatal("AI assist unavailable", err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out string
	if assistMode == "summarize" {
		out, err = assistant.Summarize(ctx, text)
	} else {
		out, err = assistant.SuggestCategory(ctx, text)
	}
	if err != nil {
		fatal("AI assist failed", err)
	}
	fmt.Println(out)
}

func init() {
	rootCmd.AddCommand(assistCmd)
	f := assistCmd.Flags()
	f.StringVar(&assistMode, "mode", "extract", "What to ask for (extract, summarize, category)")
	f.StringVarP(&assistSender, "sender", "s", "", "Register the suggestion with this sender")
	f.StringVarP(&assistRecipient, "recipient", "r", "", "Register the suggestion with this recipient")
	f.StringVar(&assistType, "type", string(core.TypePhysical), "Document type when registering (PHYSICAL, DIGITAL)")
}
