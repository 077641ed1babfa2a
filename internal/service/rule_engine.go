package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/autocloud/autocloud-api/internal/models"
)

const (
	bytesPerMB   = 1 << 20
	millisPerDay = 24 * 60 * 60 * 1000
)

// MatchFiles evaluates the rules against the listing and returns the matched
// projections in the listing's order. Folders are never matched. For each
// file the enabled rules run in their given order and the first rule whose
// pattern and condition both hold decides the match; later rules are not
// consulted for that file.
func MatchFiles(files []models.FileRecord, rules []models.Rule, now time.Time) []models.MatchedFile {
	matched := make([]models.MatchedFile, 0)

	for _, f := range files {
		if f.MimeType == models.FolderMimeType {
			continue
		}

		nameLower := strings.ToLower(f.Name)
		sizeMB := float64(f.SizeBytes) / float64(bytesPerMB)
		ageDays := 0.0
		if f.ModifiedTime != nil {
			ageDays = float64(now.Sub(*f.ModifiedTime).Milliseconds()) / float64(millisPerDay)
		}

		for _, rule := range rules {
			if !rule.Enabled {
				continue
			}
			pattern := strings.ToLower(strings.TrimSpace(rule.Pattern))
			value := strings.TrimSpace(rule.Value)
			if pattern == "" || value == "" {
				continue
			}

			var patternMatch bool
			if strings.HasPrefix(pattern, ".") {
				patternMatch = strings.HasSuffix(nameLower, pattern)
			} else {
				patternMatch = strings.Contains(nameLower, pattern)
			}
			if !patternMatch {
				continue
			}

			if !conditionHolds(rule.Condition, value, nameLower, sizeMB, ageDays) {
				continue
			}

			matched = append(matched, models.MatchedFile{
				ID:           f.ID,
				Name:         f.Name,
				MimeType:     f.MimeType,
				SizeBytes:    f.SizeBytes,
				ModifiedTime: f.ModifiedTime,
				Reason:       string(rule.Condition) + " " + rule.Value,
			})
			break
		}
	}

	return matched
}

func conditionHolds(condition models.RuleCondition, value, nameLower string, sizeMB, ageDays float64) bool {
	switch condition {
	case models.ConditionOlderThan:
		return ageDays > numeric(value)
	case models.ConditionLargerThan:
		return sizeMB > numeric(value)
	case models.ConditionContains:
		return strings.Contains(nameLower, strings.ToLower(value))
	default:
		return false
	}
}

// numeric parses the rule value; malformed input yields NaN so threshold
// comparisons fail closed and the rule never matches.
func numeric(value string) float64 {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}
