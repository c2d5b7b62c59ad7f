package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectBestTitle_PrefersKeywordOverlap(t *testing.T) {
	p := NewParser(DefaultLimits())
	response := "Here are some options:\n" +
		"* Cozy Studio Near Central Park\n" +
		"* A Lovely Place To Stay In The City\n" +
		"* Welcome to Your Urban Retreat"

	got := p.SelectBestTitle(response, "Studio apartment near Central Park")
	assert.Equal(t, "Cozy Studio Near Central Park", got)
}

func TestSelectBestTitle_TieGoesToShorter(t *testing.T) {
	p := NewParser(DefaultLimits())
	response := "* Sunny Garden Flat With Terrace\n* Sunny Garden Flat Home"

	// Both are 20-50 chars and share no words with the original.
	got := p.SelectBestTitle(response, "zzz")
	assert.Equal(t, "Sunny Garden Flat Home", got)
}

func TestSelectBestTitle_PenalizesGenericOpenings(t *testing.T) {
	p := NewParser(DefaultLimits())
	response := "**The Harbour Loft Experience**\n**Harbour Loft Experience!**"

	got := p.SelectBestTitle(response, "Harbour loft")
	assert.Equal(t, "Harbour Loft Experience!", got)
}

func TestSelectBestTitle_PlainLinesFallback(t *testing.T) {
	p := NewParser(DefaultLimits())
	response := "Here is a rewrite:\n# Heading\nThe best choice:\nModern Duplex by the Lake"

	got := p.SelectBestTitle(response, "Duplex lake")
	assert.Equal(t, "Modern Duplex by the Lake", got)
}

func TestSelectBestTitle_NoCandidatesKeepsOriginal(t *testing.T) {
	p := NewParser(DefaultLimits())
	original := strings.Repeat("o", 120)

	got := p.SelectBestTitle("Here are none\n\n# Nothing", original)
	assert.Equal(t, strings.Repeat("o", 100), got)
}

func TestSelectBestTitle_Deduplicates(t *testing.T) {
	candidates := titleCandidates("* Same Title\n* Same Title\n**Same Title**")
	assert.Equal(t, []string{"Same Title"}, candidates)
}

func TestSelectBestTitle_HardCut(t *testing.T) {
	p := NewParser(NewLimits(10, 0, 0, 0))

	got := p.SelectBestTitle("* Penthouse with panoramic views", "penthouse")
	assert.Equal(t, "Penthouse ", got)
}

func TestScoreTitle(t *testing.T) {
	words := wordSet("Beach House Malibu")

	assert.Equal(t, 1, scoreTitle("Short", words))
	assert.Equal(t, 4, scoreTitle("Stunning Beach House Retreat", words))
	assert.Equal(t, 0, scoreTitle(strings.Repeat("x", 80), words))
	assert.Equal(t, 0, scoreTitle("a small hut", words))
}
