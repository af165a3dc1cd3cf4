package scoring

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cribbage/cards"
)

func hand(t *testing.T, notation string) Hand {
	t.Helper()
	h, err := NewHand(cards.MustParseCards(notation))
	require.NoError(t, err)
	return h
}

func combosWithText(combos []Combo, text string) []Combo {
	var result []Combo
	for _, c := range combos {
		if c.Text == text {
			result = append(result, c)
		}
	}
	return result
}

func TestFindRuns(t *testing.T) {
	h := hand(t, "AD 2D 2S 3D 3S")

	runs := h.findRuns(nil)
	require.Len(t, runs, 4)

	assert.Equal(t, "AD 2D 3D", cards.FormatCards(runs[0].Cards))
	assert.Equal(t, "AD 2S 3D", cards.FormatCards(runs[1].Cards))
	assert.Equal(t, "AD 2D 3S", cards.FormatCards(runs[2].Cards))
	assert.Equal(t, "AD 2S 3S", cards.FormatCards(runs[3].Cards))

	for _, run := range runs {
		assert.Equal(t, 3, run.Score)
		assert.Equal(t, "run of 3", run.Text)
	}
}

func TestFindRunsBreaksOnGaps(t *testing.T) {
	tests := []struct {
		name    string
		hand    string
		lengths []int
	}{
		{name: "no run", hand: "2H 4S 6D 8C 10H", lengths: nil},
		{name: "run of two only", hand: "2H 3S 5D 9C KH", lengths: nil},
		{name: "run at start", hand: "2H 3S 4D 9C KH", lengths: []int{3}},
		{name: "trailing run", hand: "AH 5S JD QC KH", lengths: []int{3}},
		{name: "run of four", hand: "9H 10S JD QC 2H", lengths: []int{4}},
		{name: "run of five", hand: "9H 10S JD QC KH", lengths: []int{5}},
		{name: "double run of four", hand: "9H 10S JD QC QH", lengths: []int{4, 4}},
		{name: "two separate runs", hand: "AH 2S 3D 5C 6H 7S", lengths: []int{3, 3}},
		{name: "king does not wrap to ace", hand: "QH KS AD 2C 5H", lengths: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runs := hand(t, tc.hand).findRuns(nil)
			var lengths []int
			for _, r := range runs {
				lengths = append(lengths, r.Score)
				assert.Len(t, r.Cards, r.Score)
			}
			assert.Equal(t, tc.lengths, lengths)
		})
	}
}

func TestFindRunsTripleDuplicate(t *testing.T) {
	runs := hand(t, "4H 4S 4D 5C 6H").findRuns(nil)
	require.Len(t, runs, 3)
	assert.Equal(t, "4H 5C 6H", cards.FormatCards(runs[0].Cards))
	assert.Equal(t, "4S 5C 6H", cards.FormatCards(runs[1].Cards))
	assert.Equal(t, "4D 5C 6H", cards.FormatCards(runs[2].Cards))
}

func TestFindFifteens(t *testing.T) {
	combos := hand(t, "5H 10S 7D 8C 2H").findFifteens(nil)

	require.NotEmpty(t, combos)
	for _, c := range combos {
		assert.Equal(t, 2, c.Score)
		assert.Equal(t, "fifteen", c.Text)
		sum := 0
		for _, card := range c.Cards {
			sum += card.Value()
		}
		assert.Equal(t, 15, sum)
	}

	var found []string
	for _, c := range combos {
		found = append(found, cards.FormatCards(c.Cards))
	}
	assert.Contains(t, found, "5H 10S")
	assert.Contains(t, found, "7D 8C")
	assert.Contains(t, found, "5H 8C 2H")
}

func TestFindFifteensOrderAndFaceCards(t *testing.T) {
	combos := hand(t, "5H KS 5D QC").findFifteens(nil)

	// Power set order: bitmask 0011 (5H KS), 0110 (KS 5D), 1001 (5H QC), 1100 (5D QC)
	var found []string
	for _, c := range combos {
		found = append(found, cards.FormatCards(c.Cards))
	}
	assert.Equal(t, []string{"5H KS", "KS 5D", "5H QC", "5D QC"}, found)
}

func TestFindFifteensNone(t *testing.T) {
	assert.Empty(t, hand(t, "AH AS 2D 2C 3H").findFifteens(nil))
}

func TestFindNOfKind(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		score int
		text  string
		count int
	}{
		{name: "four of a kind", hand: "7H 7S 7D 7C 2H", score: 12, text: "4 of a kind", count: 1},
		{name: "three of a kind", hand: "7H 7S 7D 3C 2H", score: 6, text: "3 of a kind", count: 1},
		{name: "pair", hand: "7H 7S 9D 3C 2H", score: 2, text: "2 of a kind", count: 1},
		{name: "nothing", hand: "7H 8S 9D 3C 2H", count: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			combos := hand(t, tc.hand).findNOfKind(nil)
			require.Len(t, combos, tc.count)
			if tc.count == 1 {
				assert.Equal(t, tc.score, combos[0].Score)
				assert.Equal(t, tc.text, combos[0].Text)
			}
		})
	}
}

func TestFindNOfKindGroupsAscending(t *testing.T) {
	combos := hand(t, "KH 3S KD 3C 3H").findNOfKind(nil)
	require.Len(t, combos, 2)
	assert.Equal(t, "3S 3C 3H", cards.FormatCards(combos[0].Cards))
	assert.Equal(t, 6, combos[0].Score)
	assert.Equal(t, "KH KD", cards.FormatCards(combos[1].Cards))
	assert.Equal(t, 2, combos[1].Score)
}

func TestFindFlush(t *testing.T) {
	combos := hand(t, "2H 5H 9H JH KH").findFlush(nil)
	require.Len(t, combos, 1)
	assert.Equal(t, 5, combos[0].Score)
	assert.Equal(t, "5-flush", combos[0].Text)
	assert.Len(t, combos[0].Cards, 5)

	assert.Empty(t, hand(t, "2H 5H 9H JH KS").findFlush(nil), "four of a suit is not a flush")

	combos = hand(t, "2C 5C 9C JC KC AC").findFlush(nil)
	require.Len(t, combos, 1)
	assert.Equal(t, 6, combos[0].Score)
	assert.Equal(t, "6-flush", combos[0].Text)
}

func TestFindAllCombosOrder(t *testing.T) {
	// 5 hearts A-5: fifteen over all five cards, a 5-flush and a run of five
	combos := hand(t, "AH 2H 3H 4H 5H").FindAllCombos()

	var texts []string
	for _, c := range combos {
		texts = append(texts, c.Text)
	}
	require.NotEmpty(t, texts)

	lastFifteen := -1
	for i, text := range texts {
		if text == "fifteen" {
			lastFifteen = i
		}
	}
	assert.Equal(t, "5-flush", texts[lastFifteen+1])
	assert.Equal(t, "run of 5", texts[lastFifteen+2])
	assert.Len(t, texts, lastFifteen+3)
}

func TestFindAllCombosBestHand(t *testing.T) {
	// The 29 hand without the nob: 5 5 5 J with the fourth 5
	combos := hand(t, "5H 5S 5D 5C JD").FindAllCombos()

	assert.Len(t, combosWithText(combos, "fifteen"), 8)
	kinds := combosWithText(combos, "4 of a kind")
	require.Len(t, kinds, 1)
	assert.Equal(t, 12, kinds[0].Score)
	assert.Equal(t, 28, Total(combos))
}

func TestFindAllCombosEmptyHand(t *testing.T) {
	h, err := NewHand(nil)
	require.NoError(t, err)
	assert.Empty(t, h.FindAllCombos())
}

func TestFindAllCombosIdempotent(t *testing.T) {
	h := hand(t, "AD 2D 2S 3D 3S")
	first := h.FindAllCombos()
	second := h.FindAllCombos()
	assert.Equal(t, first, second)
}

func TestFindAllCombosConcurrent(t *testing.T) {
	h := hand(t, "4H 5S 6D 6C JH")
	want := h.FindAllCombos()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, h.FindAllCombos())
		}()
	}
	wg.Wait()
}

func TestNewHandTooLarge(t *testing.T) {
	_, err := NewHand(make([]cards.Card, 64))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHandTooLarge))

	assert.Panics(t, func() { MustHand(make([]cards.Card, 100)) })
}

func TestComboMatches(t *testing.T) {
	combo := Combo{Cards: cards.MustParseCards("AD 2S 3D"), Score: 3, Text: "run of 3"}

	assert.True(t, combo.Matches(cards.MustParseCards("3D AD 2S")))
	assert.False(t, combo.Matches(cards.MustParseCards("AD 2S")))
	assert.False(t, combo.Matches(cards.MustParseCards("AD 2D 3D")))
	assert.False(t, combo.Matches(cards.MustParseCards("AD 2S 3D 4D")))
	assert.Equal(t, "AD 2S 3D: 3 points for a run of 3", combo.String())
}

func TestComboMatchesRepeatedCards(t *testing.T) {
	pair := Combo{Cards: cards.MustParseCards("5H 5H"), Score: 2, Text: "2 of a kind"}

	assert.False(t, pair.Matches(cards.MustParseCards("5H 10S")))
	assert.False(t, pair.Matches(cards.MustParseCards("10S 5H")))
	assert.True(t, pair.Matches(cards.MustParseCards("5H 5H")))

	fifteen := Combo{Cards: cards.MustParseCards("5H 10S"), Score: 2, Text: "fifteen"}
	assert.False(t, fifteen.Matches(cards.MustParseCards("5H 5H")))
}

func TestHandContainsAndString(t *testing.T) {
	h := hand(t, "5H 10S KD")
	assert.True(t, h.Contains(cards.MustParseCard("10s")))
	assert.False(t, h.Contains(cards.MustParseCard("10h")))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, "5H 10S KD", h.String())
}
