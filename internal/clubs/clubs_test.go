package clubs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCountry(t *testing.T) {
	england, ok := ByCountry("England")
	require.True(t, ok)
	assert.Contains(t, england, "Arsenal")

	_, ok = ByCountry("Atlantis")
	assert.False(t, ok)
}

func TestAllCoversEveryCountry(t *testing.T) {
	all := All()
	total := 0
	for _, country := range Countries() {
		list, ok := ByCountry(country)
		require.True(t, ok)
		total += len(list)
		for _, club := range list {
			assert.True(t, Contains(club), "club %q missing from flat list", club)
		}
	}
	assert.Len(t, all, total)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "ARS", ShortName("Arsenal"))
	assert.Equal(t, "PSG", ShortName("Paris Saint-Germain"))
	// Unknown clubs fall back to the first three letters.
	assert.Equal(t, "SOM", ShortName("Some FC"))
	assert.Equal(t, "FC", ShortName("fc"))
}

func TestFlag(t *testing.T) {
	assert.Equal(t, "🇪🇸", Flag("Spain"))
	assert.Equal(t, "⚽", Flag("Atlantis"))
}
