package sqlxrepos

import (
	"strings"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
)

// orderBy renders an ORDER BY clause from the service-provided ordering,
// or the empty string when no ordering was requested.
func orderBy(ordering []core.DBOrdering) string {
	if len(ordering) == 0 {
		return ""
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}
