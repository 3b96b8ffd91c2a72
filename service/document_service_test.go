package service

import (
	"strings"
	"testing"

	"github.com/dbarkol/telco-ai-solution-labs/types"
)

func TestCleanTextStripsControlCharacters(t *testing.T) {
	in := "Reset\x00 the\x1b gateway\r\n"
	got := cleanText(in)
	if got != "Reset the gateway" {
		t.Errorf("cleanText = %q", got)
	}
}

func TestCleanTextFormFeedBecomesNewline(t *testing.T) {
	got := cleanText("Section 1\fSection 2")
	if got != "Section 1\nSection 2" {
		t.Errorf("cleanText = %q", got)
	}
}

func TestCleanTextDropsReplacementRune(t *testing.T) {
	got := cleanText("LED � indicator")
	if strings.ContainsRune(got, '�') {
		t.Errorf("replacement rune survived: %q", got)
	}
}

func TestCleanTextTrimsAndCollapses(t *testing.T) {
	got := cleanText("  leading  and trailing  ")
	if got != "leading and trailing" {
		t.Errorf("cleanText = %q", got)
	}
}

func TestTotalChars(t *testing.T) {
	pages := []types.PageText{
		{Number: 1, Text: "abcd"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "efg"},
	}
	if got := totalChars(pages); got != 7 {
		t.Errorf("totalChars = %d, want 7", got)
	}
}
