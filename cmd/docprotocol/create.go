package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/docprotocol/pkg/core"
)

var (
	createTitle       string
	createDescription string
	createSender      string
	createRecipient   string
	createType        string
	createCategory    string
	createPriority    string
	createReason      string
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new protocol",
	Long:  `Register a document under the next protocol code. Title, sender and recipient are required.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		typ, err := core.ParseType(createType)
		if err != nil {
			fatal("Invalid --type", err)
		}

		d := core.DefaultDraft()
		d.Title = createTitle
		d.Description = createDescription
		d.Sender = createSender
		d.Recipient = createRecipient
		d.Type = typ
		d.Category = createCategory
		d.Priority = core.Priority(createPriority)

		svc := openService(ctx, cmd)
		p, err := svc.Create(changeReason(ctx, createReason, core.CommitTypeFeat, "protocols", "create protocol"), d)
		if err != nil {
			fatal("Failed to create protocol", err)
		}

		fmt.Printf("%s %s\n", p.Code, p.ID)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	f := createCmd.Flags()
	f.StringVarP(&createTitle, "title", "t", "", "Document title (required)")
	f.StringVar(&createDescription, "description", "", "Free-text description")
	f.StringVarP(&createSender, "sender", "s", "", "Sender (required)")
	f.StringVarP(&createRecipient, "recipient", "r", "", "Recipient (required)")
	f.StringVar(&createType, "type", string(core.TypePhysical), "Document type (PHYSICAL, DIGITAL)")
	f.StringVarP(&createCategory, "category", "c", "", "Category (e.g. Contrato, Financeiro)")
	f.StringVar(&createPriority, "priority", "", "Priority (High, Medium, Low)")
	f.StringVarP(&createReason, "message", "m", "", "Change reason recorded in git when versioned")
}
