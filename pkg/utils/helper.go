package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseInt converts string to int, falling back to defaultValue for empty,
// malformed or non-positive input.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseUUIDList parses a comma separated id list such as "a,b,c". Blank
// entries are skipped; any malformed entry fails the whole list.
func ParseUUIDList(value string) ([]uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// ParseUUIDs parses every string in values.
func ParseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// UniqueUUIDs drops repeats, keeping first occurrence order.
func UniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
