package generation

import (
	"fmt"

	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/models"
)

// BuildPrompt combines the query with the matched document.
//
//	plain:   "<query>\n<content>"
//	labeled: "Query: <query>\nDocument: <id>\nContent: <content>"
//
// Unknown styles fall back to labeled.
func BuildPrompt(style, query string, match models.QueryMatch) string {
	if style == config.PromptStylePlain {
		return query + "\n" + match.Content
	}
	return fmt.Sprintf("Query: %s\nDocument: %s\nContent: %s", query, match.ID, match.Content)
}
