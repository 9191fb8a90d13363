package products

import (
	"context"
	"net/http"
	"strings"
	"time"

	"vestra/mq"
	"vestra/rdx"
	"vestra/utils"

	"github.com/julienschmidt/httprouter"
)

// Suggestion is one autocomplete hit.
type Suggestion struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

const maxSuggestions = 8

// Suggest returns product-name completions for a prefix, served from the
// Redis index the event worker maintains.
func Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	prefix := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if prefix == "" {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"suggestions": []Suggestion{}})
		return
	}

	members, err := rdx.Conn.ZRange(ctx, mq.AutocompleteKey, 0, -1).Result()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Suggestions unavailable")
		return
	}

	suggestions := []Suggestion{}
	for _, member := range members {
		id, name, found := strings.Cut(member, "|")
		if !found {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			suggestions = append(suggestions, Suggestion{ProductID: id, Name: name})
			if len(suggestions) == maxSuggestions {
				break
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
