package timeline

import "github.com/haseab/tiba-backend/internal/entity"

// Classify derives the entry category from its tag set. Precedence:
// Unavoidable > Carryover > Productive > Wasted; no recognized tag means
// Neutral. Total function, unrecognized tags are simply ignored.
func Classify(tags []string) entity.Category {
	if hasTag(tags, entity.TagUnavoidable) {
		return entity.CategoryUnavoidable
	}
	if hasTag(tags, entity.TagCarryover) {
		return entity.CategoryCarryover
	}
	if hasTag(tags, entity.TagProductive) {
		return entity.CategoryProductive
	}
	if hasTag(tags, entity.TagWasted) {
		return entity.CategoryWasted
	}
	return entity.CategoryNeutral
}

// IsFlowExempt reports the orthogonal flag consulted only by the flow
// tracker, never by bucket classification.
func IsFlowExempt(tags []string) bool {
	return hasTag(tags, entity.TagFlowExempt)
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
