// Package category translates the small set of user-facing repair
// categories into the backend tag vocabulary and filters fetched records
// against it. Filtering happens on already-fetched records; the backend
// query itself always covers every repair-relevant tag.
package category

import (
	"strings"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// All is the sentinel category meaning "no category filtering".
const All = "all"

// vocabulary maps each user-facing category to the backend type tags it
// covers. An empty set means the category has no tag equivalent and falls
// through to substring matching.
var vocabulary = map[string][]string{
	"mobile":      {"mobile_phone", "electronics"},
	"laptop":      {"computer", "electronics"},
	"appliances":  {"appliance"},
	"electronics": {"electronics"},
	"clothing":    {"tailor", "shoemaker"},
	"furniture":   {},
	"bikes":       {"bicycle", "bicycle_repair_station"},
	"tools":       {"hardware"},
}

// Filter keeps the records matching the given category. An absent category
// (empty or "all") keeps everything. A category with a known tag set keeps
// records whose type is in the set; a category without one falls back to a
// case-insensitive substring match against record name and address, so
// unmapped categories still narrow the list instead of emptying it.
func Filter(records []models.ServiceRecord, cat string) []models.ServiceRecord {
	if cat == "" || cat == All {
		return records
	}

	allowed := vocabulary[cat]
	kept := make([]models.ServiceRecord, 0, len(records))

	if len(allowed) > 0 {
		for _, rec := range records {
			for _, typ := range allowed {
				if rec.Type == typ {
					kept = append(kept, rec)
					break
				}
			}
		}
		return kept
	}

	needle := strings.ToLower(cat)
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), needle) ||
			strings.Contains(strings.ToLower(rec.Address), needle) {
			kept = append(kept, rec)
		}
	}

	return kept
}
