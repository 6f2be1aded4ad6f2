// Package search строит фильтр каталога профилей из свободной строки запроса.
//
// Строка разбивается на термы (слова либо фразы в двойных кавычках), и для
// каждого терма собирается OR по всем поисковым полям (case-insensitive
// вхождение подстроки), а термы между собой соединяются через AND.
package search

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoFields возвращается при попытке собрать фильтр без поисковых полей.
// Это ошибка конфигурации вызывающего кода, а не пользовательский ввод.
var ErrNoFields = errors.New("search: no fields configured")

var (
	// findTerms выделяет термы: фраза в двойных кавычках либо непрерывный
	// кусок без пробелов
	findTerms = regexp.MustCompile(`"([^"]+)"|(\S+)`)
	// normSpace схлопывает последовательности из 2+ пробельных символов
	normSpace = regexp.MustCompile(`\s{2,}`)
)

// Normalize разбивает строку запроса на термы, сохраняя порядок слева направо.
// Кусок в двойных кавычках — один терм: кавычки снимаются, краевые пробелы
// обрезаются, внутренние последовательности из 2+ пробелов схлопываются в один.
//
// Пример:
//
//	Normalize(` some random words "with  quotes " and  space`)
//	-> ["some", "random", "words", "with quotes", "and", "space"]
func Normalize(raw string) []string {
	matches := findTerms.FindAllStringSubmatch(raw, -1)
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		t := m[1]
		if t == "" {
			t = m[2]
		}
		terms = append(terms, normSpace.ReplaceAllString(strings.TrimSpace(t), " "))
	}
	return terms
}

// Query - собранный поисковый фильтр: AND по термам, внутри терма OR по полям.
// Порядок термов и полей сохраняется, поэтому для одинакового запроса SQL
// всегда рендерится одинаково.
type Query struct {
	terms  []string
	fields []string
}

// Build собирает Query из нормализованных термов и упорядоченного списка
// полей. Пустой список термов дает фильтр, пропускающий все строки. Пустой
// список полей - ошибка конфигурации ErrNoFields.
func Build(terms, fields []string) (*Query, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	return &Query{terms: terms, fields: fields}, nil
}

// Empty сообщает, что фильтр не ограничивает выборку (термов нет)
func (q *Query) Empty() bool {
	return len(q.terms) == 0
}

// Terms возвращает термы фильтра в исходном порядке
func (q *Query) Terms() []string {
	return q.terms
}

// SQL рендерит фильтр в WHERE-фрагмент вида
//
//	(lower(f1) LIKE ? ESCAPE '\' OR lower(f2) LIKE ? ESCAPE '\') AND (...)
//
// с аргументами '%<term>%' (терм приведен к нижнему регистру, спецсимволы
// LIKE экранированы). Для пустого фильтра возвращает ("", nil).
func (q *Query) SQL() (string, []any) {
	if q.Empty() {
		return "", nil
	}

	groups := make([]string, 0, len(q.terms))
	args := make([]any, 0, len(q.terms)*len(q.fields))

	for _, term := range q.terms {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		ors := make([]string, 0, len(q.fields))
		for _, field := range q.fields {
			ors = append(ors, "lower("+field+") LIKE ? ESCAPE '\\'")
			args = append(args, pattern)
		}
		groups = append(groups, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(groups, " AND "), args
}

// escapeLike экранирует метасимволы LIKE в пользовательском терме
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
