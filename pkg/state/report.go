package state

import (
	"fmt"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
)

func listBenefits(items []*content.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s [%s]", item.Name, item.Benefits()))
	}
	return strings.Join(parts, ", ")
}

// StatusReport summarizes resources, kills and inventory.
func (s *Session) StatusReport(msgs content.Messages) string {
	parts := make([]string, 0, len(content.AllResources))
	for _, r := range content.AllResources {
		parts = append(parts, fmt.Sprintf("%d/%d %s", s.ResourceCount(r), s.ResourceMax(r), r.Name()))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d %s.", strings.Join(parts, ", "), s.Kills, msgs.Message("status.kills"))
	if len(s.Consumables) > 0 {
		b.WriteString("\n\n" + msgs.Message("status.consumables") + listBenefits(s.Consumables))
	}
	if len(s.Equipment) > 0 {
		b.WriteString("\n" + msgs.Message("status.equipment") + listBenefits(s.Equipment))
	}
	return b.String()
}
