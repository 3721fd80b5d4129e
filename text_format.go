package packall

import (
	"reflect"
	"strconv"
	"strings"
)

// Format renders v as the table-literal text form (C7), the textual
// counterpart to Pack. v is typically a pointer to the value or the value
// itself.
func Format(v any, opts FormatOptions) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	fw := &formatState{opts: opts}
	fw.writeValue(rv, 0)
	return fw.sb.String(), nil
}

type formatState struct {
	sb   strings.Builder
	opts FormatOptions
}

func (fw *formatState) indent(depth int) {
	cols := Roundup(depth*2, 4)
	fw.sb.WriteString(strings.Repeat(" ", cols))
}

func (fw *formatState) writeValue(v reflect.Value, depth int) {
	ti := getTypeInfo(v.Type())
	switch ti.kind {
	case kindBool:
		fw.sb.WriteString(strconv.FormatBool(v.Bool()))
	case kindU8, kindU16, kindU32, kindU64:
		fw.sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case kindS8, kindS16, kindS32, kindS64:
		fw.sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case kindCh:
		fw.writeQuotedString(string(rune(v.Uint())))
	case kindF32:
		fw.sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case kindF64:
		fw.sb.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case kindString:
		fw.writeString(v.String())
	case kindAggregate:
		fw.writeAggregate(v, ti, depth)
	case kindList:
		fw.writeList(v, depth)
	case kindSet:
		fw.writeSet(v, depth)
	case kindMap:
		fw.writeMap(v, depth)
	case kindPair, kindTuple:
		fw.writePairLike(v, depth)
	case kindVariant:
		fw.writeVariant(v, ti, depth)
	case kindOptional:
		if !v.FieldByName("Valid").Bool() {
			fw.sb.WriteString("nil")
		} else {
			fw.writeValue(v.FieldByName("Value"), depth)
		}
	case kindOwnedBox:
		if v.IsNil() {
			fw.sb.WriteString("nil")
		} else {
			fw.writeValue(v.Elem(), depth)
		}
	case kindDeprecated:
		fw.sb.WriteString("nil")
	case kindCustom:
		fw.sb.WriteString(strconv.Quote("<custom>"))
	}
}

func (fw *formatState) writeString(s string) {
	if strings.ContainsAny(s, "\n\r") {
		fw.writeLongBracket(s)
		return
	}
	fw.writeQuotedString(s)
}

func (fw *formatState) writeQuotedString(s string) {
	fw.sb.WriteString(strconv.Quote(s))
}

// writeLongBracket picks the lowest `=` level whose closing sequence
// doesn't appear inside s, then wraps s in [===[ ... ]===] accordingly —
// the reference's writer_state::writestr collision-avoidance algorithm,
// re-expressed as plain struct-free logic rather than the original's
// bit-packed recursion-frame state (see SPEC_FULL.md §4).
func (fw *formatState) writeLongBracket(s string) {
	level := 0
	for {
		closer := "]" + strings.Repeat("=", level) + "]"
		if !strings.Contains(s, closer) {
			break
		}
		level++
	}
	eq := strings.Repeat("=", level)
	fw.sb.WriteString("[")
	fw.sb.WriteString(eq)
	fw.sb.WriteString("[")
	fw.sb.WriteString(s)
	fw.sb.WriteString("]")
	fw.sb.WriteString(eq)
	fw.sb.WriteString("]")
}

func (fw *formatState) writeAggregate(v reflect.Value, ti *typeInfo, depth int) {
	fw.sb.WriteString("{\n")
	for _, fp := range ti.fields {
		fv := v.Field(fp.Index)
		if isDeprecatedType(fp.Type) {
			continue
		}
		if fw.opts.OmitDefault && fv.IsZero() {
			continue
		}
		fw.indent(depth + 1)
		if !fw.opts.OmitNames {
			fw.sb.WriteString(v.Type().Field(fp.Index).Name)
			fw.sb.WriteString(" = ")
		}
		fw.writeValue(fv, depth+1)
		fw.sb.WriteString(",\n")
	}
	fw.indent(depth)
	fw.sb.WriteString("}")
}

func (fw *formatState) writeList(v reflect.Value, depth int) {
	if v.Kind() == reflect.Slice && v.IsNil() {
		fw.sb.WriteString("nil")
		return
	}
	fw.sb.WriteString("{ ")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			fw.sb.WriteString(", ")
		}
		fw.writeValue(v.Index(i), depth+1)
	}
	fw.sb.WriteString(" }")
}

func (fw *formatState) writeSet(v reflect.Value, depth int) {
	if v.IsNil() {
		fw.sb.WriteString("nil")
		return
	}
	fw.sb.WriteString("{ ")
	iter := v.MapRange()
	first := true
	for iter.Next() {
		if !first {
			fw.sb.WriteString(", ")
		}
		first = false
		fw.writeValue(iter.Key(), depth+1)
	}
	fw.sb.WriteString(" }")
}

func (fw *formatState) writeMap(v reflect.Value, depth int) {
	if v.IsNil() {
		fw.sb.WriteString("nil")
		return
	}
	fw.sb.WriteString("{\n")
	iter := v.MapRange()
	for iter.Next() {
		fw.indent(depth + 1)
		fw.sb.WriteString("[")
		fw.writeValue(iter.Key(), depth+1)
		fw.sb.WriteString("] = ")
		fw.writeValue(iter.Value(), depth+1)
		fw.sb.WriteString(",\n")
	}
	fw.indent(depth)
	fw.sb.WriteString("}")
}

func (fw *formatState) writePairLike(v reflect.Value, depth int) {
	fw.sb.WriteString("{ ")
	n := v.NumField()
	for i := 0; i < n; i++ {
		if i > 0 {
			fw.sb.WriteString(", ")
		}
		fw.writeValue(v.Field(i), depth+1)
	}
	fw.sb.WriteString(" }")
}

func (fw *formatState) writeVariant(v reflect.Value, ti *typeInfo, depth int) {
	idx := int(v.FieldByName("Index").Int())
	fw.sb.WriteString("{ [")
	fw.sb.WriteString(strconv.Itoa(idx))
	fw.sb.WriteString("] = ")
	if idx >= 0 && idx < len(ti.elems) {
		fw.writeValue(v.Field(idx+1), depth+1)
	}
	fw.sb.WriteString(" }")
}
