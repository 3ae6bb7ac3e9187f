package transcript

import "unicode"

// Language names the dominant script of a transcript, used to keep
// prompts and proofreading in the source language
type Language string

const (
	LanguageEnglish            Language = "English"
	LanguageChineseSimplified  Language = "Simplified Chinese"
	LanguageChineseTraditional Language = "Traditional Chinese"
	LanguageJapanese           Language = "Japanese"
	LanguageKorean             Language = "Korean"
	LanguageRussian            Language = "Russian"
)

// Characters whose simplified and traditional forms differ, used to
// tell the two Chinese variants apart by frequency.
const (
	simplifiedChars  = "简体国际办产动师见关说证"
	traditionalChars = "簡體國際辦產動師見關說證"
)

// DetectLanguage classifies text by counting script membership of its
// letters. Deterministic and total; defaults to English when no script
// dominates.
func DetectLanguage(text string) Language {
	var han, kana, hangul, cyrillic, latin int

	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.IsLetter(r):
			latin++
		}
	}

	// Kana marks Japanese even though kanji dominate mixed text.
	if kana > 0 && kana+han >= hangul && kana+han >= cyrillic && kana+han >= latin {
		return LanguageJapanese
	}

	max := latin
	lang := LanguageEnglish
	if han > max {
		max, lang = han, chineseVariant(text)
	}
	if hangul > max {
		max, lang = hangul, LanguageKorean
	}
	if cyrillic > max {
		lang = LanguageRussian
	}
	return lang
}

func chineseVariant(text string) Language {
	simplified, traditional := 0, 0
	for _, r := range text {
		for _, s := range simplifiedChars {
			if r == s {
				simplified++
			}
		}
		for _, t := range traditionalChars {
			if r == t {
				traditional++
			}
		}
	}
	if traditional > simplified {
		return LanguageChineseTraditional
	}
	return LanguageChineseSimplified
}
