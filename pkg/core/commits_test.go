package core

import "testing"

func TestFormatChangeReason(t *testing.T) {
	tests := []struct {
		name    string
		ctype   string
		scope   string
		subject string
		body    string
		want    string
	}{
		{
			name:    "simple",
			ctype:   "feat",
			subject: "create PRT-2026-001",
			want:    "feat: create PRT-2026-001\n\nPowered-by: DocProtocol",
		},
		{
			name:    "with scope",
			ctype:   "fix",
			scope:   "protocols",
			subject: "mark PRT-2026-001 as SIGNED",
			want:    "fix(protocols): mark PRT-2026-001 as SIGNED\n\nPowered-by: DocProtocol",
		},
		{
			name:    "with body",
			ctype:   "feat",
			scope:   "protocols",
			subject: "create PRT-2026-002",
			body:    "  Contrato X  ",
			want:    "feat(protocols): create PRT-2026-002\n\nContrato X\n\nPowered-by: DocProtocol",
		},
		{
			name:    "empty type defaults to chore",
			subject: "seed",
			want:    "chore: seed\n\nPowered-by: DocProtocol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatChangeReason(tt.ctype, tt.scope, tt.subject, tt.body)
			if got != tt.want {
				t.Errorf("FormatChangeReason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendFooter(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{name: "plain", msg: "signed by legal", want: "signed by legal\n\nPowered-by: DocProtocol"},
		{name: "trailing newline", msg: "signed\n", want: "signed\n\nPowered-by: DocProtocol"},
		{name: "already present", msg: "x\n\nPowered-by: DocProtocol", want: "x\n\nPowered-by: DocProtocol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppendFooter(tt.msg); got != tt.want {
				t.Errorf("AppendFooter() = %q, want %q", got, tt.want)
			}
		})
	}
}
