package jsonfield

import (
	"encoding/json"
	"strings"
)

const (
	nullValueLiteralConstant  = "null"
	trueValueLiteralConstant  = "true"
	falseValueLiteralConstant = "false"
	emptyValueConstant        = ""
)

// FirstScalar returns the first scalar value associated with fieldName anywhere
// in the supplied JSON document, rendered as a string. Strings are returned
// unquoted, booleans as "true"/"false", numbers in their literal form, and an
// explicit null as "null". An occurrence whose value is an object or array does
// not end the search; the walk descends into that composite and continues. The
// empty string is returned when the document holds no scalar occurrence of the
// field or is not valid JSON.
func FirstScalar(jsonText string, fieldName string) string {
	trimmedFieldName := strings.TrimSpace(fieldName)
	if len(trimmedFieldName) == 0 {
		return emptyValueConstant
	}

	decoder := json.NewDecoder(strings.NewReader(jsonText))
	decoder.UseNumber()

	value, found := scanValue(decoder, trimmedFieldName)
	if !found {
		return emptyValueConstant
	}
	return value
}

// scanValue consumes one JSON value from the decoder, returning the rendering
// of the requested field when it is encountered inside that value.
func scanValue(decoder *json.Decoder, fieldName string) (string, bool) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return emptyValueConstant, false
	}

	delimiter, isDelimiter := token.(json.Delim)
	if !isDelimiter {
		return emptyValueConstant, false
	}

	switch delimiter {
	case '{':
		return scanObject(decoder, fieldName)
	case '[':
		return scanArray(decoder, fieldName)
	default:
		return emptyValueConstant, false
	}
}

func scanObject(decoder *json.Decoder, fieldName string) (string, bool) {
	for decoder.More() {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return emptyValueConstant, false
		}
		keyName, keyIsString := keyToken.(string)
		if !keyIsString {
			return emptyValueConstant, false
		}

		if keyName == fieldName {
			valueToken, valueError := decoder.Token()
			if valueError != nil {
				return emptyValueConstant, false
			}
			if nestedDelimiter, isNested := valueToken.(json.Delim); isNested {
				// The first occurrence holds a composite value; keep searching inside it.
				var value string
				var found bool
				if nestedDelimiter == '{' {
					value, found = scanObject(decoder, fieldName)
				} else {
					value, found = scanArray(decoder, fieldName)
				}
				if found {
					return value, true
				}
				continue
			}
			return renderScalar(valueToken), true
		}

		value, found := skipOrDescend(decoder, fieldName)
		if found {
			return value, true
		}
	}

	// Consume the closing brace.
	_, _ = decoder.Token()
	return emptyValueConstant, false
}

func scanArray(decoder *json.Decoder, fieldName string) (string, bool) {
	for decoder.More() {
		value, found := skipOrDescend(decoder, fieldName)
		if found {
			return value, true
		}
	}

	// Consume the closing bracket.
	_, _ = decoder.Token()
	return emptyValueConstant, false
}

// skipOrDescend consumes the next value, descending into composites to keep
// searching for the field.
func skipOrDescend(decoder *json.Decoder, fieldName string) (string, bool) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return emptyValueConstant, false
	}

	delimiter, isDelimiter := token.(json.Delim)
	if !isDelimiter {
		return emptyValueConstant, false
	}

	switch delimiter {
	case '{':
		return scanObject(decoder, fieldName)
	case '[':
		return scanArray(decoder, fieldName)
	default:
		return emptyValueConstant, false
	}
}

func renderScalar(token json.Token) string {
	switch typedValue := token.(type) {
	case string:
		return typedValue
	case bool:
		if typedValue {
			return trueValueLiteralConstant
		}
		return falseValueLiteralConstant
	case json.Number:
		return typedValue.String()
	case nil:
		return nullValueLiteralConstant
	default:
		return emptyValueConstant
	}
}
