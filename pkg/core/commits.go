package core

import (
	"strings"
)

// CommitType constants for semantic change reasons.
const (
	CommitTypeFeat  = "feat"
	CommitTypeFix   = "fix"
	CommitTypeDocs  = "docs"
	CommitTypeChore = "chore"
)

// Footer is appended to every change reason recorded by versioned repositories.
const Footer = "Powered-by: DocProtocol"

// FormatChangeReason builds a Conventional Commit message.
// logic:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Powered-by: DocProtocol
func FormatChangeReason(ctype, scope, subject, body string) string {
	var sb strings.Builder

	if ctype == "" {
		ctype = CommitTypeChore
	}
	sb.WriteString(ctype)

	if scope != "" {
		sb.WriteString("(")
		sb.WriteString(scope)
		sb.WriteString(")")
	}

	sb.WriteString(": ")
	sb.WriteString(subject)

	if body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(body))
	}

	sb.WriteString("\n\n")
	sb.WriteString(Footer)

	return sb.String()
}

// AppendFooter appends the footer to an arbitrary message if not present.
// Used for free-form -m "msg" audit notes.
func AppendFooter(msg string) string {
	if strings.Contains(msg, Footer) {
		return msg
	}

	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	if !strings.HasSuffix(msg, "\n\n") {
		msg += "\n"
	}

	return msg + Footer
}
