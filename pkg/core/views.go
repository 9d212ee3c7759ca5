package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Stats aggregates record counts per status for the dashboard.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Signed    int `json:"signed"`
	Delivered int `json:"delivered"`
	// Cancelled is tracked but not shown on the dashboard cards.
	Cancelled int `json:"cancelled"`
}

// ComputeStats counts records by status.
func ComputeStats(records []Protocol) Stats {
	s := Stats{Total: len(records)}
	for _, p := range records {
		switch p.Status {
		case StatusPending:
			s.Pending++
		case StatusSigned:
			s.Signed++
		case StatusDelivered:
			s.Delivered++
		case StatusCancelled:
			s.Cancelled++
		}
	}
	return s
}

// FilterProtocols returns the records whose title, code or sender contains
// query, ignoring case. An empty query returns records as given.
func FilterProtocols(records []Protocol, query string) []Protocol {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	out := make([]Protocol, 0, len(records))
	for _, p := range records {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Code), q) ||
			strings.Contains(strings.ToLower(p.Sender), q) {
			out = append(out, p)
		}
	}
	return out
}

// CodePrefix starts every display code.
const CodePrefix = "PRT"

// FormatCode builds the display code, e.g. PRT-2026-007.
func FormatCode(year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", CodePrefix, year, seq)
}

// ParseCode splits a display code into year and sequence.
func ParseCode(code string) (year, seq int, err error) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 || parts[0] != CodePrefix {
		return 0, 0, fmt.Errorf("malformed protocol code %q", code)
	}
	if year, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("malformed protocol code %q: %w", code, err)
	}
	if seq, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, fmt.Errorf("malformed protocol code %q: %w", code, err)
	}
	return year, seq, nil
}

// SeedProtocols returns the demonstration records, newest first.
func SeedProtocols(now time.Time) []Protocol {
	year := now.Year()
	return []Protocol{
		{
			ID:          "1",
			Code:        FormatCode(year, 1),
			Title:       "Contrato de Prestação de Serviços - TI",
			Description: "Contrato referente à manutenção mensal dos servidores da matriz.",
			Sender:      "Tech Solutions Ltda",
			Recipient:   "Departamento de TI",
			CreatedAt:   now,
			Status:      StatusPending,
			Type:        TypePhysical,
			Category:    "Contrato",
		},
		{
			ID:          "2",
			Code:        FormatCode(year, 2),
			Title:       "Nota Fiscal - Compra de Equipamentos",
			Description: "NF-e 4590 referente à aquisição de 5 novos notebooks.",
			Sender:      "Mega Store Informatica",
			Recipient:   "Almoxarifado",
			CreatedAt:   now.Add(-24 * time.Hour),
			Status:      StatusDelivered,
			Type:        TypeDigital,
			Category:    "Financeiro",
		},
	}
}
