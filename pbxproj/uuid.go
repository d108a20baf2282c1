package pbxproj

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

const UUID_LENGTH = 24

var uuidRegex = regexp.MustCompile(`\b[0-9A-Fa-f]{24}\b`)

// uuidGenerator hands out 24 character object identifiers. Each identifier
// is a name-based (SHA-1) UUID over a seed and the current time, truncated.
// Identifiers already present in the manifest are collected once up front
// and a collision simply re-rolls.
type uuidGenerator struct {
	uuids map[string]struct{}
	now   func() time.Time
}

func newUuidGenerator(contents string, now func() time.Time) *uuidGenerator {
	uuids := make(map[string]struct{})
	for _, id := range uuidRegex.FindAllString(contents, -1) {
		uuids[strings.ToUpper(id)] = struct{}{}
	}
	return &uuidGenerator{uuids: uuids, now: now}
}

func (g *uuidGenerator) generateUuid(seed string) string {
	for attempt := 0; ; attempt++ {
		name := fmt.Sprintf("%s-%d", seed, g.now().UnixNano())
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d", name, attempt)
		}
		u := uuid.NewV5(uuid.NamespaceOID, name)
		newUUID := strings.ToUpper(strings.ReplaceAll(u.String(), "-", "")[0:UUID_LENGTH])

		if !g.has(newUUID) {
			g.uuids[newUUID] = struct{}{}
			return newUUID
		}
	}
}

// has reports whether id is taken, ignoring case.
func (g *uuidGenerator) has(id string) bool {
	_, found := g.uuids[strings.ToUpper(id)]
	return found
}
