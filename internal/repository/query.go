package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/piggybank-api/internal/query"
)

// specFilter converts a search spec into a mongo filter. The search value is
// quoted so it matches as a literal, case-insensitive substring.
func specFilter(spec query.Spec) bson.M {
	if !spec.HasSearch() {
		return bson.M{}
	}

	return bson.M{
		spec.SearchField: bson.M{
			"$regex":   regexp.QuoteMeta(spec.SearchValue),
			"$options": "i",
		},
	}
}

// specSort converts a search spec into a mongo sort document.
func specSort(spec query.Spec) bson.D {
	order := 1
	if spec.SortDesc {
		order = -1
	}

	field := spec.SortField
	if field == "" {
		field = query.DefaultSortField
	}

	return bson.D{{Key: field, Value: order}}
}
