package inspect

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"unicode"

	"github.com/samber/lo"

	"github.com/shibukawa/snapjs/ast"
	"github.com/shibukawa/snapjs/parser"
	"github.com/shibukawa/snapjs/tokenizer"
)

// Inspect reads a snippet and returns the views selected by opt. When neither Tokens nor
// Tree is set both are returned.
func Inspect(r io.Reader, opt InspectOptions) (InspectResult, error) {
	var res InspectResult

	b, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}

	src := string(b)
	all := !opt.Tokens && !opt.Tree

	if opt.Tokens || all {
		if res.Tokens, err = Tokens(src); err != nil {
			return res, fmt.Errorf("tokenize: %w", err)
		}
	}

	if opt.Tree || all {
		program, err := parser.Parse(src, parser.Options{
			Slices:                     opt.Slices,
			AllowAwaitOutsideFunction:  true,
			AllowReturnOutsideFunction: true,
		})
		if err != nil {
			return res, fmt.Errorf("parse: %w", err)
		}

		res.Tree = NodeView(program)
		res.Counts = countNodes(program)

		if n := res.Counts[string(ast.TypeSliceExpression)]; n > 0 {
			res.Notes = append(res.Notes, fmt.Sprintf("%d slice expression(s) will be lowered", n))
		}
	}

	return res, nil
}

// Tokens returns the token stream of src, comments included and EOF excluded.
func Tokens(src string) ([]TokenView, error) {
	tokens, err := tokenizer.NewTokenizer(src).AllTokens()
	if err != nil {
		return nil, err
	}

	views := make([]TokenView, 0, len(tokens))

	for _, tok := range tokens {
		if tok.Type == tokenizer.EOF {
			continue
		}

		views = append(views, TokenView{
			Type:          tok.Type.String(),
			Value:         tok.Value,
			Line:          tok.Position.Line,
			Column:        tok.Position.Column,
			Offset:        tok.Position.Offset,
			NewlineBefore: tok.NewlineBefore,
		})
	}

	return views, nil
}

// Tree parses src and returns its tree view.
func Tree(src string, slices bool) (map[string]any, error) {
	program, err := parser.Parse(src, parser.Options{
		Slices:                     slices,
		AllowAwaitOutsideFunction:  true,
		AllowReturnOutsideFunction: true,
	})
	if err != nil {
		return nil, err
	}

	return NodeView(program), nil
}

var (
	nodeType     = reflect.TypeFor[ast.Node]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// NodeView converts n into nested maps: "type" holds the kind tag, "span" the byte range
// and every other non-zero field appears under its lowerCamelCase name.
func NodeView(n ast.Node) map[string]any {
	span := n.Loc()
	view := map[string]any{
		"type": string(n.Type()),
		"span": []int{span.Start, span.End},
	}

	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous || !field.IsExported() {
			continue
		}

		if value, ok := fieldView(v.Field(i)); ok {
			view[fieldName(field.Name)] = value
		}
	}

	return view
}

func fieldView(v reflect.Value) (any, bool) {
	if v.Type().Implements(stringerType) && v.Kind() != reflect.Interface && v.Kind() != reflect.Pointer {
		return v.Interface().(fmt.Stringer).String(), true
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil, false
		}

		if n, ok := v.Interface().(ast.Node); ok {
			return NodeView(n), true
		}

		return nil, false
	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}

		list := make([]any, v.Len())

		for i := range list {
			elem := v.Index(i)
			if (elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer) && elem.IsNil() {
				// Array holes stay in place.
				continue
			}

			if elem.Type().Implements(nodeType) || elem.Kind() == reflect.Interface {
				list[i] = NodeView(elem.Interface().(ast.Node))
			} else {
				list[i] = elem.Interface()
			}
		}

		return list, true
	case reflect.String:
		return v.String(), v.String() != ""
	case reflect.Bool:
		return v.Bool(), v.Bool()
	default:
		return v.Interface(), !v.IsZero()
	}
}

// fieldName lowercases the leading run of capitals: StartIndex -> startIndex, ID -> id.
func fieldName(name string) string {
	runes := []rune(name)

	for i := 0; i < len(runes) && unicode.IsUpper(runes[i]); i++ {
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

func countNodes(root ast.Node) map[string]int {
	counts := map[string]int{}

	ast.Inspect(root, func(n ast.Node) bool {
		counts[string(n.Type())]++
		return true
	})

	return counts
}

// sortedTypes returns the node kinds of counts in name order.
func sortedTypes(counts map[string]int) []string {
	types := lo.Keys(counts)
	slices.Sort(types)

	return types
}
