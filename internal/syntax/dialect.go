package syntax

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// dialect maps one tree-sitter grammar onto the canonical node variants.
type dialect struct {
	kinds    map[string]Kind
	literals map[string]LiteralKind
	comments map[string]struct{}
	// reserved words the grammar may still accept as identifiers.
	reserved map[string]struct{}

	memberObjectField   string
	memberPropertyField string

	// numberKind refines a numeric literal, e.g. BigInt suffixes.
	numberKind func(raw string) LiteralKind
	// cleanNumber strips dialect-specific decoration before parsing.
	cleanNumber func(raw string) string
}

var typeScriptDialect = &dialect{
	kinds: map[string]Kind{
		"program":                         KindProgram,
		"statement_block":                 KindBlock,
		"call_expression":                 KindCall,
		"identifier":                      KindIdentifier,
		"member_expression":               KindMember,
		"await_expression":                KindAwait,
		"try_statement":                   KindTry,
		"catch_clause":                    KindCatchClause,
		"function_declaration":            KindFunctionDeclaration,
		"generator_function_declaration":  KindFunctionDeclaration,
		"function_expression":             KindFunction,
		"function":                        KindFunction,
		"generator_function":              KindFunction,
		"arrow_function":                  KindFunction,
		"method_definition":               KindFunction,
		"assignment_expression":           KindAssignment,
		"augmented_assignment_expression": KindAssignment,
	},
	literals: map[string]LiteralKind{
		"number":          LiteralNumber,
		"string":          LiteralString,
		"template_string": LiteralTemplate,
		"true":            LiteralBoolean,
		"false":           LiteralBoolean,
		"null":            LiteralNull,
		"regex":           LiteralRegex,
	},
	comments: map[string]struct{}{
		"comment":      {},
		"html_comment": {},
	},
	reserved: map[string]struct{}{
		"try":     {},
		"catch":   {},
		"finally": {},
	},
	memberObjectField:   "object",
	memberPropertyField: "property",
	numberKind: func(raw string) LiteralKind {
		if strings.HasSuffix(raw, "n") {
			return LiteralBigInt
		}
		return LiteralNumber
	},
	cleanNumber: func(raw string) string { return raw },
}

var rustNumberSuffixRE = regexp.MustCompile(`(?:[iu](?:8|16|32|64|128|size)|f32|f64)$`)

var rustDialect = &dialect{
	kinds: map[string]Kind{
		"source_file":              KindProgram,
		"block":                    KindBlock,
		"call_expression":          KindCall,
		"identifier":               KindIdentifier,
		"field_expression":         KindMember,
		"await_expression":         KindAwait,
		"function_item":            KindFunctionDeclaration,
		"closure_expression":       KindFunction,
		"assignment_expression":    KindAssignment,
		"compound_assignment_expr": KindAssignment,
	},
	literals: map[string]LiteralKind{
		"integer_literal":    LiteralNumber,
		"float_literal":      LiteralNumber,
		"string_literal":     LiteralString,
		"raw_string_literal": LiteralString,
		"char_literal":       LiteralChar,
		"boolean_literal":    LiteralBoolean,
	},
	comments: map[string]struct{}{
		"line_comment":  {},
		"block_comment": {},
	},
	memberObjectField:   "value",
	memberPropertyField: "field",
	numberKind:          func(string) LiteralKind { return LiteralNumber },
	cleanNumber: func(raw string) string {
		lower := strings.ToLower(raw)
		if strings.HasPrefix(lower, "0x") {
			// f32/f64 are hex digits here; only integer suffixes apply.
			if loc := rustNumberSuffixRE.FindStringIndex(raw); loc != nil && (raw[loc[0]] == 'i' || raw[loc[0]] == 'u') {
				return raw[:loc[0]]
			}
			return raw
		}
		return rustNumberSuffixRE.ReplaceAllString(raw, "")
	},
}

// parseNumber converts a numeric literal's source text into its value.
// Integers wider than 64 bits are rounded to the nearest float64 and
// decimals beyond the float64 range become ±Inf. Unparsable text yields
// NaN.
func parseNumber(raw string) float64 {
	text := strings.ReplaceAll(strings.TrimSpace(raw), "_", "")
	if text == "" {
		return math.NaN()
	}
	if u, err := strconv.ParseUint(text, 0, 64); err == nil {
		return float64(u)
	}
	if i, ok := new(big.Int).SetString(text, 0); ok {
		f, _ := new(big.Float).SetInt(i).Float64()
		return f
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return f
	}
	return math.NaN()
}
