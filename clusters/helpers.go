package clusters

import (
	"time"

	"github.com/google/uuid"
)

func parseUUID(s string) (uuid.UUID, error) { return uuid.Parse(s) }

func parseTime(s string) (time.Time, error) {
	return time.Parse("2006-01-02T15:04:05.999999999Z07:00", s)
}
