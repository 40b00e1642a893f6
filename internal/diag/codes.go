package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// Парсерные
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnexpectedEOF   Code = 2002
	SynExpectSemicolon Code = 2003
	SynExpectType      Code = 2004

	// Семантические, по одному коду на вид ошибки чекера
	SemaInfo                   Code = 3000
	SemaUnknownAlias           Code = 3001
	SemaArityMismatch          Code = 3002
	SemaTypeMismatch           Code = 3003
	SemaUndeclaredFunction     Code = 3004
	SemaReservedNameViolation  Code = 3005
	SemaMissingReturnStatement Code = 3006
	SemaInvalidLiteralArgument Code = 3007

	// Генерация IR
	IRInfo            Code = 4000
	IRUnsupportedNode Code = 4001

	// Ошибки I/O
	IOLoadFileError Code = 5001
	IOCacheError    Code = 5002

	// Ошибки проекта
	ProjInvalidConfig Code = 6001
	ProjBadExtension  Code = 6002
)

var codeDescription = map[Code]string{
	UnknownCode:                "Unknown error",
	LexInfo:                    "Lexical information",
	LexUnknownChar:             "Unexpected character",
	SynInfo:                    "Syntax information",
	SynUnexpectedToken:         "Unexpected token",
	SynUnexpectedEOF:           "Unexpected end of input",
	SynExpectSemicolon:         "Missing semicolon",
	SynExpectType:              "Expected type",
	SemaInfo:                   "Semantic information",
	SemaUnknownAlias:           "Unknown type alias",
	SemaArityMismatch:          "Wrong number of arguments",
	SemaTypeMismatch:           "Type mismatch",
	SemaUndeclaredFunction:     "Undeclared function",
	SemaReservedNameViolation:  "Reserved builtin name",
	SemaMissingReturnStatement: "Missing return statement",
	SemaInvalidLiteralArgument: "Invalid literal argument",
	IRInfo:                     "IR information",
	IRUnsupportedNode:          "Unsupported node",
	IOLoadFileError:            "I/O load file error",
	IOCacheError:               "Cache error",
	ProjInvalidConfig:          "Invalid structura.toml",
	ProjBadExtension:           "Source files must use the .struct extension",
}

// ID returns the stable short identifier (LEX1001, SEM3003, ...).
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IR%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}
