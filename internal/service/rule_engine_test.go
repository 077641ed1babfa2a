package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocloud/autocloud-api/internal/models"
)

func fileAged(id, name, mime string, sizeBytes int64, ageDays int, now time.Time) models.FileRecord {
	modified := now.AddDate(0, 0, -ageDays)
	return models.FileRecord{
		ID:           id,
		Name:         name,
		MimeType:     mime,
		SizeBytes:    sizeBytes,
		ModifiedTime: &modified,
	}
}

func TestMatchFilesSkipsFolders(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "old-stuff", models.FolderMimeType, 0, 400, now),
		fileAged("f2", "old-stuff.log", "text/plain", 1024, 400, now),
	}
	rules := []models.Rule{
		{Pattern: "old", Condition: models.ConditionOlderThan, Value: "30", Enabled: true},
	}

	matched := MatchFiles(files, rules, now)

	require.Len(t, matched, 1)
	assert.Equal(t, "f2", matched[0].ID)
}

func TestMatchFilesDotPatternIsSuffixMatch(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "report.tmp", "application/octet-stream", 10, 90, now),
		fileAged("f2", "tmp-notes.txt", "text/plain", 10, 90, now),
		fileAged("f3", "ARCHIVE.TMP", "application/octet-stream", 10, 90, now),
	}
	rules := []models.Rule{
		{Pattern: ".tmp", Condition: models.ConditionOlderThan, Value: "30", Enabled: true},
	}

	matched := MatchFiles(files, rules, now)

	require.Len(t, matched, 2)
	assert.Equal(t, "f1", matched[0].ID)
	assert.Equal(t, "f3", matched[1].ID)
}

func TestMatchFilesPlainPatternIsSubstringMatch(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "holiday-backup-2019.zip", "application/zip", 600 << 20, 10, now),
		fileAged("f2", "notes.txt", "text/plain", 600 << 20, 10, now),
	}
	rules := []models.Rule{
		{Pattern: "backup", Condition: models.ConditionLargerThan, Value: "500", Enabled: true},
	}

	matched := MatchFiles(files, rules, now)

	require.Len(t, matched, 1)
	assert.Equal(t, "f1", matched[0].ID)
}

func TestMatchFilesDisabledAndBlankRulesAreSkipped(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "anything.log", "text/plain", 10, 100, now),
	}
	rules := []models.Rule{
		{Pattern: ".log", Condition: models.ConditionOlderThan, Value: "1", Enabled: false},
		{Pattern: "", Condition: models.ConditionOlderThan, Value: "1", Enabled: true},
		{Pattern: ".log", Condition: models.ConditionOlderThan, Value: "", Enabled: true},
	}

	assert.Empty(t, MatchFiles(files, rules, now))
}

func TestMatchFilesMalformedThresholdNeverMatches(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "huge.iso", "application/octet-stream", 4 << 30, 500, now),
	}
	rules := []models.Rule{
		{Pattern: ".iso", Condition: models.ConditionOlderThan, Value: "ten", Enabled: true},
		{Pattern: ".iso", Condition: models.ConditionLargerThan, Value: "1GB", Enabled: true},
	}

	assert.Empty(t, MatchFiles(files, rules, now))
}

func TestMatchFilesFirstMatchingRuleWins(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "video.mp4", "video/mp4", 2 << 30, 200, now),
	}
	rules := []models.Rule{
		{Pattern: ".mp4", Condition: models.ConditionOlderThan, Value: "30", Enabled: true},
		{Pattern: ".mp4", Condition: models.ConditionLargerThan, Value: "100", Enabled: true},
	}

	matched := MatchFiles(files, rules, now)

	require.Len(t, matched, 1)
	assert.Equal(t, "older-than 30", matched[0].Reason)
}

func TestMatchFilesContainsComparesLowercased(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		fileAged("f1", "Copy of Budget.xlsx", "application/vnd.ms-excel", 10, 1, now),
	}
	rules := []models.Rule{
		{Pattern: "copy", Condition: models.ConditionContains, Value: "BUDGET", Enabled: true},
	}

	matched := MatchFiles(files, rules, now)

	require.Len(t, matched, 1)
	assert.Equal(t, "contains BUDGET", matched[0].Reason)
}

func TestMatchFilesMissingModifiedTimeCountsAsAgeZero(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	files := []models.FileRecord{
		{ID: "f1", Name: "orphan.log", MimeType: "text/plain", SizeBytes: 10},
	}
	rules := []models.Rule{
		{Pattern: ".log", Condition: models.ConditionOlderThan, Value: "0", Enabled: true},
	}

	assert.Empty(t, MatchFiles(files, rules, now))
}
