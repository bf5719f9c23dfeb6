// Package database holds the table of legal SQF identifiers. The compiler
// validates every command and variable name against it before the name is
// admitted to the name pool.
package database

import "strings"

// Flags describes how a command may be invoked and whether the engine
// resolves it to a fixed value at load time.
type Flags uint8

const (
	// Nular marks a command invokable with no operands.
	Nular Flags = 1 << iota

	// Unary marks a command invokable with a single right-hand operand.
	Unary

	// Binary marks a command invokable with left and right operands.
	Binary

	// Constant marks a nular command whose value is fixed, allowing the
	// compiler to fold it into the constant pool.
	Constant
)

// Database is a read-only lookup of SQF commands. The zero value is not
// usable; construct with New or Default.
type Database struct {
	commands map[string]Flags
}

// New builds a database from an explicit command table. Keys are
// canonicalized to lowercase. Tests use this to run the compiler against a
// small closed grammar.
func New(commands map[string]Flags) *Database {
	table := make(map[string]Flags, len(commands))
	for name, flags := range commands {
		table[asciiLower(name)] = flags
	}
	return &Database{commands: table}
}

// Default returns a database preloaded with the built-in command table.
func Default() *Database {
	return defaultDatabase
}

// Has reports whether name is a known command. Name must already be
// lowercase.
func (d *Database) Has(name string) bool {
	_, ok := d.commands[name]
	return ok
}

// HasNular reports whether name is invokable with no operands.
func (d *Database) HasNular(name string) bool {
	return d.commands[name]&Nular != 0
}

// HasUnary reports whether name is invokable with one operand.
func (d *Database) HasUnary(name string) bool {
	return d.commands[name]&Unary != 0
}

// HasBinary reports whether name is invokable with two operands.
func (d *Database) HasBinary(name string) bool {
	return d.commands[name]&Binary != 0
}

// IsConstantNular reports whether name is a nular command with a fixed,
// load-time value.
func (d *Database) IsConstantNular(name string) bool {
	flags := d.commands[asciiLower(name)]
	return flags&Nular != 0 && flags&Constant != 0
}

// IsValidIdentifier reports whether name may appear in the compiled name
// pool. Known commands are accepted, as are identifier-shaped names, which
// covers user variables the command table cannot enumerate. Name is
// canonicalized before the lookup.
func (d *Database) IsValidIdentifier(name string) bool {
	lower := asciiLower(name)
	if d.Has(lower) {
		return true
	}
	return isIdentifier(lower)
}

// asciiLower folds only the ASCII letters A-Z; identifier canonicalization
// must not apply Unicode case folding.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// isIdentifier reports whether s is shaped like an SQF variable name: a
// letter or underscore followed by letters, digits or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
