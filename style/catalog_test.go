package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwpxmd/style"
)

func TestResolveKnownPresets(t *testing.T) {
	for _, name := range []string{"default", "academic", "business", "minimal"} {
		cat, err := style.Resolve(name)
		require.NoError(t, err)
		require.NotNil(t, cat)
		assert.Equal(t, name, cat.Preset)
	}
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := style.Resolve("nonexistent")
	require.Error(t, err)
	var cfgErr style.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestCatalogIDsAreUnique(t *testing.T) {
	cat, err := style.Resolve("default")
	require.NoError(t, err)

	seen := make(map[int]string)
	record := func(id int, label string) {
		if prev, ok := seen[id]; ok {
			t.Fatalf("duplicate ID %d used by both %q and %q", id, prev, label)
		}
		seen[id] = label
	}

	for role, entry := range cat.Chars {
		record(entry.ID, "char:"+string(role))
	}
	for role, entry := range cat.Paras {
		record(entry.ID, "para:"+string(role))
	}
	for role, entry := range cat.Styles {
		record(entry.ID, "style:"+string(role))
	}
	record(cat.HRBorderID, "hr_border")
	record(cat.TableBorderID, "table_border")
	record(cat.OrderedNumberingID, "ordered_numbering")
	record(cat.BulletNumberingID, "bullet_numbering")
	record(cat.TaskCheckedNumberID, "task_checked_numbering")
	record(cat.TaskUncheckedNumberID, "task_unchecked_numbering")
}

func TestHeadingSizeDecreasesWithLevel(t *testing.T) {
	cat, err := style.Resolve("default")
	require.NoError(t, err)

	prev := cat.HeadingSize(1)
	for lvl := 2; lvl <= 6; lvl++ {
		cur := cat.HeadingSize(lvl)
		assert.LessOrEqualf(t, cur, prev, "heading size should not increase from h%d to h%d", lvl-1, lvl)
		prev = cur
	}
}

func TestStyleEntriesReferenceValidParaIDs(t *testing.T) {
	cat, err := style.Resolve("business")
	require.NoError(t, err)

	paraIDs := make(map[int]bool)
	for _, entry := range cat.Paras {
		paraIDs[entry.ID] = true
	}
	for role, styleEntry := range cat.Styles {
		assert.Truef(t, paraIDs[styleEntry.ParaID], "style role %q references unknown para ID %d", role, styleEntry.ParaID)
	}
}
