package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r-1", RunID("r-1")},
		{"Stage", KeyStage, "parse", Stage("parse")},
		{"DocID", KeyDocID, "welcome", DocID("welcome")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Category", KeyCategory, "Tech", Category("Tech")},
		{"Asset", KeyAsset, "a_b.png", Asset("a_b.png")},
		{"DataFile", KeyDataFile, "blog.json", DataFile("blog.json")},
		{"Status", KeyStatus, "skipped", Status("skipped")},
		{"Count", KeyCount, "3", Count(3)},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		// Key drift would break log ingestion schemas.
		require.Equal(t, tc.attrKey, tc.attr.Key, tc.name)
		require.Equal(t, tc.attrVal, tc.attr.Value.String(), tc.name)
	}
}
