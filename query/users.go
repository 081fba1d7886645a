package query

import (
	"strings"

	"github.com/meinhoongagan/taskr/models"
	"github.com/meinhoongagan/taskr/store"
)

// SearchUsers returns users whose name or email contains term, ignoring case.
// An empty role matches every role. Results keep registration order.
func SearchUsers(snap store.Snapshot, term string, role models.Role) []models.User {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.User, 0, len(snap.Users))
	for _, u := range snap.Users {
		if role != "" && u.Role != role {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		out = append(out, u)
	}
	return out
}
