package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
)

// FormatResources renders the team as a table.
func FormatResources(resources []domain.Resource) string {
	if len(resources) == 0 {
		return Dim("No resources yet.") + "\n"
	}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		rows = append(rows, []string{Bold(r.Name), RoleBadge(r.Role), r.Email})
	}
	return RenderTable([]string{"NAME", "ROLE", "EMAIL"}, rows)
}

// FormatAIConfig shows the provider with the api key masked.
func FormatAIConfig(c domain.AIConfig) string {
	key := domain.MaskSecret(c.APIKey)
	if key == "" {
		key = Dim("(not set)")
	}
	return fmt.Sprintf("%s %s\n%s %s\n", Dim("Provider:"), StylePurple.Render(string(c.Provider)), Dim("API key: "), key)
}

// FormatProjectSummary is the one-box overview printed after a plan is
// generated or restored.
func FormatProjectSummary(s domain.ProjectState) string {
	if s.Project == nil {
		return Dim("No project yet. Run `planboard plan` to generate one.") + "\n"
	}
	p := s.Project
	var b strings.Builder
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Dates:  "), DateRange(p.StartDate, p.EndDate))
	fmt.Fprintf(&b, "%s %d epics · %d stories · %d tasks", Dim("Plan:   "), len(s.Epics), len(s.Stories), len(s.Tasks))
	return RenderBox(p.Name, b.String()) + "\n"
}
