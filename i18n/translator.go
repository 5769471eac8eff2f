package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data carries the values substituted into the message template (for
// example "record", "field", "expected" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictEN = map[string]string{
	"invalid_type":    "Wrong type for {record}#{field}. Expected type {expected}, got {actual} (val: '{value}').",
	"invalid_value":   "Wrong value for {record}#{field}. Expected value is {allowed}, got '{value}'.",
	"invalid_input":   "Cannot construct {record} from {actual} (val: '{value}').",
	"required":        "Missing value for {record}#{field}. Expected type {expected}.",
	"unknown_key":     "Unknown key {key} for {record}.",
	"unknown_field":   "Unknown attribute {record}#{field}.",
	"duplicate_field": "Attribute {record}#{field} is already defined.",
	"duplicate_key":   "Attribute {record}#{field} maps to key {key}, already used by {record}#{other}.",
	"declaration":     "Invalid declaration for {record}: {reason}.",
	"serialize":       "Cannot serialize {record}#{field} to Map.",
}

var dictJA = map[string]string{
	"invalid_type":    "{record}#{field} の型が不正です。期待する型は {expected} ですが {actual} が与えられました (値: '{value}')。",
	"invalid_value":   "{record}#{field} の値が不正です。許可される値は {allowed} ですが '{value}' が与えられました。",
	"invalid_input":   "{actual} から {record} を構築できません (値: '{value}')。",
	"required":        "{record}#{field} の値がありません。期待する型は {expected} です。",
	"unknown_key":     "{record} に未知のキー {key} があります。",
	"unknown_field":   "{record}#{field} という属性はありません。",
	"duplicate_field": "属性 {record}#{field} は既に定義されています。",
	"duplicate_key":   "属性 {record}#{field} のキー {key} は {record}#{other} が既に使用しています。",
	"declaration":     "{record} の宣言が不正です: {reason}。",
	"serialize":       "{record}#{field} を Map に変換できません。",
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := dictEN
	if t.lang == "ja" {
		dict = dictJA
	}
	tmpl, ok := dict[code]
	if !ok {
		return code
	}
	return render(tmpl, data)
}

// render substitutes {name} placeholders. Unknown placeholders are left as-is.
func render(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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
