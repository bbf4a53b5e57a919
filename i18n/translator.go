// Package i18n provides the messages attached to issues.
package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"invalid_type":          "invalid type",
		"required":              "required property missing",
		"unknown_key":           "unknown key",
		"duplicate_key":         "duplicate key",
		"too_small":             "value is below the minimum",
		"too_big":               "value is above the maximum",
		"too_short":             "too short",
		"too_long":              "too long",
		"invalid_enum":          "value is not one of the allowed values",
		"invalid_format":        "invalid format",
		"discriminator_missing": "discriminator missing",
		"discriminator_unknown": "unknown discriminator value",
		"parse_error":           "parse error",
		"truncated":             "truncated",
		"malformed_filter":      `each "nodes" entry must be an object with an integer "uuid"`,
		"unknown_field":         "undefined field ignored",
	},
	"ja": {
		"invalid_type":          "型が不正です",
		"required":              "必須プロパティが不足しています",
		"unknown_key":           "未知のキーです",
		"duplicate_key":         "キーが重複しています",
		"too_small":             "最小値を下回っています",
		"too_big":               "最大値を超えています",
		"too_short":             "短すぎます",
		"too_long":              "長すぎます",
		"invalid_enum":          "許可されていない値です",
		"invalid_format":        "形式が不正です",
		"discriminator_missing": "識別子がありません",
		"discriminator_unknown": "未知の識別子です",
		"parse_error":           "解析エラー",
		"truncated":             "打ち切られました",
		"malformed_filter":      `"nodes" の各要素は整数の "uuid" を持つオブジェクトである必要があります`,
		"unknown_field":         "未定義のフィールドを無視しました",
	},
	"zh": {
		"invalid_type":          "类型错误",
		"required":              "缺少必填字段",
		"unknown_key":           "未知字段",
		"duplicate_key":         "字段重复",
		"too_small":             "数值低于最小值",
		"too_big":               "数值超过最大值",
		"too_short":             "过短",
		"too_long":              "过长",
		"invalid_enum":          "取值不在允许范围内",
		"invalid_format":        "格式错误",
		"discriminator_missing": "缺少类型标识",
		"discriminator_unknown": "未知的类型标识",
		"parse_error":           "解析错误",
		"truncated":             "输入被截断",
		"malformed_filter":      `每个 "nodes" 项必须是包含整数 "uuid" 键的字典`,
		"unknown_field":         "已忽略未定义字段",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator atomic.Value

func init() { currentTranslator.Store(holder{dictTranslator{lang: "en"}}) }

// holder keeps atomic.Value stores on a single concrete type.
type holder struct{ Translator }

// Languages lists the built-in dictionary languages.
func Languages() []string { return []string{"en", "ja", "zh"} }

// SetLanguage switches the built-in Translator language ("en"/"ja"/"zh").
// Unknown languages fall back to "en".
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator.Store(holder{dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	currentTranslator.Store(holder{tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	return currentTranslator.Load().(holder).Message(code, data)
}
