// Package i18n holds the message catalog used when a decode error carries no
// converter-supplied message.
package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for decode error codes.
// data provides optional values to embed ("key", "expected", "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var catalogs = map[string]map[string]string{
	"en": {
		"missing_key":      "required key {key} is missing",
		"type_mismatch":    "expected {expected}, got {got}",
		"unexpected_value": "unexpected value",
		"unsupported_type": "no decoding strategy for {expected}",
		"invalid_json":     "payload is not valid JSON",
	},
	"ja": {
		"missing_key":      "必須キー {key} がありません",
		"type_mismatch":    "{expected} を期待しましたが {got} でした",
		"unexpected_value": "値が不正です",
		"unsupported_type": "{expected} はデコードできない型です",
		"invalid_json":     "JSON として解析できません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := catalogs[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := catalogs[lang]; !ok {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation. nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
