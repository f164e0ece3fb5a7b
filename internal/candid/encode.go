// Package candid renders and parses the small subset of Candid text that dfx
// argument files and query replies use here.
package candid

import (
	"fmt"
	"strings"
)

// Value is a Candid value that can be written in text form.
type Value interface {
	writeTo(b *strings.Builder, indent int)
}

// Field is a named record field.
type Field struct {
	Name  string
	Value Value
}

type textValue string
type blobValue []byte
type optValue struct{ v Value }
type vecValue []Value
type recordValue []Field

// Text returns a Candid text value.
func Text(s string) Value { return textValue(s) }

// Blob returns a Candid blob (vec nat8) value.
func Blob(b []byte) Value { return blobValue(b) }

// Some returns opt v.
func Some(v Value) Value { return optValue{v: v} }

// None returns an absent opt value.
func None() Value { return optValue{} }

// Vec returns a Candid vector of vs.
func Vec(vs ...Value) Value { return vecValue(vs) }

// Record returns a Candid record with fields in the given order.
func Record(fields ...Field) Value { return recordValue(fields) }

// Args renders vs as a parenthesised argument tuple suitable for --argument-file.
func Args(vs ...Value) string {
	var b strings.Builder
	b.WriteString("(")
	for i, v := range vs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  ")
		v.writeTo(&b, 1)
	}
	if len(vs) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(")\n")
	return b.String()
}

func (t textValue) writeTo(b *strings.Builder, _ int) {
	b.WriteString(quoteText(string(t)))
}

func (v blobValue) writeTo(b *strings.Builder, _ int) {
	b.WriteString(`blob "`)
	for _, c := range v {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(b, `\%02x`, c)
	}
	b.WriteString(`"`)
}

func (o optValue) writeTo(b *strings.Builder, indent int) {
	if o.v == nil {
		b.WriteString("null")
		return
	}
	b.WriteString("opt ")
	o.v.writeTo(b, indent)
}

func (v vecValue) writeTo(b *strings.Builder, indent int) {
	if len(v) == 0 {
		b.WriteString("vec {}")
		return
	}
	b.WriteString("vec {")
	for _, item := range v {
		newline(b, indent+1)
		item.writeTo(b, indent+1)
		b.WriteString(";")
	}
	newline(b, indent)
	b.WriteString("}")
}

func (r recordValue) writeTo(b *strings.Builder, indent int) {
	if len(r) == 0 {
		b.WriteString("record {}")
		return
	}
	b.WriteString("record {")
	for _, f := range r {
		newline(b, indent+1)
		b.WriteString(f.Name)
		b.WriteString(" = ")
		f.Value.writeTo(b, indent+1)
		b.WriteString(";")
	}
	newline(b, indent)
	b.WriteString("}")
}

func newline(b *strings.Builder, indent int) {
	b.WriteString("\n")
	b.WriteString(strings.Repeat("  ", indent))
}

// quoteText escapes s as a Candid text literal.
func quoteText(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
