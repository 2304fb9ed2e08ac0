package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "line" or "column").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"member_count_mismatch":       "member count differs",
		"array_element_type_mismatch": "array element type does not match",
		"mismatched_type_id":          "type does not match",
		"missing_member":              "required member missing",
		"member_mismatch":             "member type does not match",
		"no_match_for_union_case":     "no union case matches",
		"mismatched_unions":           "union has cases the validator does not accept",
		"parse_error":                 "parse error",
		"duplicate_key":               "duplicate key",
		"truncated":                   "truncated",
	},
	"ja": {
		"member_count_mismatch":       "メンバー数が一致しません",
		"array_element_type_mismatch": "配列要素の型が一致しません",
		"mismatched_type_id":          "型が一致しません",
		"missing_member":              "必須メンバーが不足しています",
		"member_mismatch":             "メンバーの型が一致しません",
		"no_match_for_union_case":     "一致するユニオンの候補がありません",
		"mismatched_unions":           "受け入れられないユニオンの候補があります",
		"parse_error":                 "解析エラー",
		"duplicate_key":               "キーが重複しています",
		"truncated":                   "打ち切られました",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if line, ok := data["line"]; ok {
		msg += " (" + line
		if col, ok := data["column"]; ok {
			msg += ":" + col
		}
		msg += ")"
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	lang = strings.ToLower(lang)
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
