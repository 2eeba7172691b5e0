package kana

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestToFullWidthKana(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "prefecture reading", input: "ﾄｳｷｮｳﾄ", expected: "トウキョウト"},
		{name: "voiced marks compose", input: "ﾁﾖﾀﾞｸ", expected: "チヨダク"},
		{name: "semi-voiced marks compose", input: "ﾎﾟﾝﾌﾟ", expected: "ポンプ"},
		{name: "small kana", input: "ﾎｯｶｲﾄﾞｳ", expected: "ホッカイドウ"},
		{name: "vu", input: "ｳﾞｧ", expected: "ヴァ"},
		{name: "punctuation", input: "｢ｱ･ｲ｣｡､ｰ", expected: "「ア・イ」。、ー"},
		{name: "mixed with kanji and ascii", input: "東京ﾄ 1-2", expected: "東京ト 1-2"},
		{name: "already full width", input: "ハチジョウマチ", expected: "ハチジョウマチ"},
		{name: "dangling voiced mark kept", input: "ﾞ", expected: "ﾞ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToFullWidthKana(tt.input))
		})
	}
}

func TestToFullWidthKana_Idempotent(t *testing.T) {
	inputs := []string{"ｷｮｳﾄﾌ", "ｶﾞｷﾞｸﾞｹﾞｺﾞ", "ﾊﾟﾋﾟﾌﾟﾍﾟﾎﾟ", "abc", "大阪ﾌ"}

	for _, in := range inputs {
		once := ToFullWidthKana(in)
		assert.Equal(t, once, ToFullWidthKana(once), in)
	}
}

func TestToFullWidthKana_NoHalfWidthLeft(t *testing.T) {
	for i := 0; i < len(halfToFull); i += 2 {
		out := ToFullWidthKana(halfToFull[i])
		for _, r := range out {
			assert.False(t, r >= 0xFF61 && r <= 0xFF9F, "half-width rune %q left in %q", r, out)
		}
		assert.True(t, utf8.ValidString(out))
	}
}

func TestNormalizePostalField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "千代田区", expected: "千代田区"},
		{name: "ideographic space inside", input: "八丈島　八丈町", expected: "八丈島八丈町"},
		{name: "several ideographic spaces", input: "三宅島　三宅村　", expected: "三宅島三宅村"},
		{name: "ascii whitespace", input: "  港区 \t", expected: "港区"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePostalField(tt.input))
		})
	}
}
