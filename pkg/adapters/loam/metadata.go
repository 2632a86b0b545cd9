package loam

// RouteMetadata is the frontmatter of a route document. It uses
// "mapstructure" tags to match standard frontmatter/YAML keys.
//
//	---
//	id: /admin
//	title: Admin area
//	guards: [auth, "role:admin"]
//	metadata:
//	  layout: dashboard
//	---
//	Markdown body becomes the route description.
type RouteMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`

	// Guards lists guard references in declaration order. Each entry is
	// either a bare registry key or a map form ({name: "role:admin"}). The
	// engine resolves them when the chain is assembled, not at load time.
	Guards []any `json:"guards" mapstructure:"guards"`

	// Metadata is free-form route annotation (layout hints, feature flags).
	Metadata map[string]string `json:"metadata" mapstructure:"metadata"`
}
