// Package graph renders the route table as a Mermaid flowchart for
// documentation and debugging.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/palisade/pkg/domain"
)

// Overlay highlights the hop trace of one decision on top of the static
// table.
type Overlay struct {
	VisitedRoutes []string
	FinalRoute    string
}

// GenerateMermaid produces a Mermaid flowchart from the route table.
// Guarded routes render as subroutine boxes annotated with their guard
// names; redirect metadata (redirect, on_denied, login) becomes dotted
// edges.
func GenerateMermaid(routes []domain.Route, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, route := range routes {
		safeID := sanitizeMermaidID(route.ID)

		opener, closer := "[", "]"
		label := route.ID
		if len(route.Guards) > 0 {
			opener, closer = "[[", "]]"
			names := make([]string, 0, len(route.Guards))
			for _, g := range route.Guards {
				names = append(names, g.String())
			}
			label = fmt.Sprintf("%s <br/> 🛡 %s", route.ID, strings.Join(names, ", "))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, key := range []string{"redirect", "on_denied", "login"} {
			target, ok := route.Metadata[key]
			if !ok || target == "" {
				continue
			}
			safeTo := sanitizeMermaidID(target)
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", safeID, key, safeTo))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef final fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedRoutes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.FinalRoute != "" {
			sb.WriteString(fmt.Sprintf("    class %s final;\n", sanitizeMermaidID(overlay.FinalRoute)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.TrimPrefix(s, "_")
	if s == "" {
		s = "root"
	}
	return s
}
