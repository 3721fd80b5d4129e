package packall

import (
	"reflect"
)

// Parse decodes the table-literal text form (C7) into dst, which must be a
// non-nil pointer. It drives the same typeInfo dispatch plan as Unpack,
// just sourced from a token stream instead of a byte stream.
func Parse(data string, dst any, opts ParseOptions) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return newErr(StatusBadFormat, "Parse destination must be a non-nil pointer, got %T", dst)
	}
	p := &textParser{lex: newLexer(data), opts: opts}
	if err := p.advance(); err != nil {
		return err
	}
	if opts.SkipInitialScope {
		return p.parseAggregateFields(rv.Elem(), getTypeInfo(rv.Elem().Type()), 0)
	}
	return p.parseValue(rv.Elem(), 0)
}

type textParser struct {
	lex *lexer
	tok token
	opts ParseOptions
}

func (p *textParser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *textParser) expect(k tokenKind, what string) error {
	if p.tok.kind != k {
		return p.lex.errf("expected %s", what)
	}
	return p.advance()
}

func (p *textParser) maxDepth() int {
	if p.opts.MaxDepth > 0 {
		return p.opts.MaxDepth
	}
	return DefaultMaxDepth
}

func (p *textParser) parseValue(v reflect.Value, depth int) error {
	if depth > p.maxDepth() {
		return newErr(StatusStackOverflow, "table literal nested past max depth")
	}
	ti := getTypeInfo(v.Type())

	switch ti.kind {
	case kindOptional:
		if p.tok.kind == tokNil {
			if err := p.advance(); err != nil {
				return err
			}
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		v.FieldByName("Valid").SetBool(true)
		return p.parseValue(v.FieldByName("Value"), depth+1)

	case kindOwnedBox:
		if p.tok.kind == tokNil {
			if err := p.advance(); err != nil {
				return err
			}
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		nv := reflect.New(ti.elem)
		if err := p.parseValue(nv.Elem(), depth+1); err != nil {
			return err
		}
		v.Set(nv)
		return nil

	case kindDeprecated:
		return p.skipValue(depth + 1)

	case kindBool:
		switch p.tok.kind {
		case tokTrue:
			v.SetBool(true)
		case tokFalse:
			v.SetBool(false)
		default:
			return p.lex.errf("expected true or false")
		}
		return p.advance()

	case kindU8, kindU16, kindU32, kindU64:
		if p.tok.kind != tokNumber {
			return p.lex.errf("expected integer")
		}
		u, err := parseNumberUint(p.tok.text)
		if err != nil {
			return newErr(StatusBadFormat, "invalid integer %q", p.tok.text)
		}
		v.SetUint(u)
		return p.advance()

	case kindS8, kindS16, kindS32, kindS64:
		if p.tok.kind != tokNumber {
			return p.lex.errf("expected integer")
		}
		n, err := parseNumberInt(p.tok.text)
		if err != nil {
			return newErr(StatusBadFormat, "invalid integer %q", p.tok.text)
		}
		v.SetInt(n)
		return p.advance()

	case kindCh:
		if p.tok.kind != tokString {
			return p.lex.errf("expected a single-character string")
		}
		r := []rune(p.tok.text)
		if len(r) != 1 {
			return newErr(StatusBadFormat, "expected exactly one character, got %q", p.tok.text)
		}
		if r[0] > 0xFF {
			return newErr(StatusBadFormat, "character %q does not fit an 8-bit code unit", p.tok.text)
		}
		v.SetUint(uint64(r[0]))
		return p.advance()

	case kindF32, kindF64:
		if p.tok.kind != tokNumber {
			return p.lex.errf("expected number")
		}
		f, err := parseNumberFloat(p.tok.text)
		if err != nil {
			return newErr(StatusBadFormat, "invalid number %q", p.tok.text)
		}
		v.SetFloat(f)
		return p.advance()

	case kindString:
		if p.tok.kind != tokString {
			return p.lex.errf("expected string")
		}
		v.SetString(p.tok.text)
		return p.advance()

	case kindAggregate:
		return p.parseAggregate(v, ti, depth)
	case kindList:
		return p.parseList(v, ti, depth)
	case kindSet:
		return p.parseSet(v, ti, depth)
	case kindMap:
		return p.parseMap(v, ti, depth)
	case kindPair, kindTuple:
		return p.parsePairLike(v, depth)
	case kindVariant:
		return p.parseVariant(v, ti, depth)
	default:
		return newErr(StatusBadFormat, "type %s has no text representation", v.Type())
	}
}

func (p *textParser) parseAggregate(v reflect.Value, ti *typeInfo, depth int) error {
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	if err := p.parseAggregateFields(v, ti, depth); err != nil {
		return err
	}
	return p.expect(tokRBrace, "'}'")
}

// parseAggregateFields parses the comma-separated field list of a table
// literal (without consuming the surrounding braces), accepting either
// `name = value` entries or bare positional values, matching whichever form
// Format produced for OmitNames.
func (p *textParser) parseAggregateFields(v reflect.Value, ti *typeInfo, depth int) error {
	pos := 0
	for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
		if p.tok.kind == tokIdent {
			name := p.tok.text
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.expect(tokEquals, "'='"); err != nil {
				return err
			}
			fp, ok := findFieldByName(v.Type(), ti, name)
			if !ok {
				if !p.opts.AllowUnknownKeys {
					return newErr(StatusUnknownKey, "unknown field %q", name)
				}
				if err := p.skipValue(depth + 1); err != nil {
					return err
				}
			} else if isDeprecatedType(fp.Type) {
				if err := p.skipValue(depth + 1); err != nil {
					return err
				}
			} else {
				if err := p.parseValue(v.Field(fp.Index), depth+1); err != nil {
					return err
				}
			}
		} else {
			if pos >= len(ti.fields) {
				if !p.opts.AllowExtraArrayEntries {
					return newErr(StatusIncompatible, "too many positional fields")
				}
				if err := p.skipValue(depth + 1); err != nil {
					return err
				}
			} else {
				fp := ti.fields[pos]
				if isDeprecatedType(fp.Type) {
					if err := p.skipValue(depth + 1); err != nil {
						return err
					}
				} else if err := p.parseValue(v.Field(fp.Index), depth+1); err != nil {
					return err
				}
			}
			pos++
		}
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	if pd, ok := postDecoderOf(v); ok {
		return pd.PostDecode()
	}
	return nil
}

func findFieldByName(t reflect.Type, ti *typeInfo, name string) (fieldPlan, bool) {
	for _, fp := range ti.fields {
		if t.Field(fp.Index).Name == name {
			return fp, true
		}
	}
	return fieldPlan{}, false
}

func (p *textParser) parseList(v reflect.Value, ti *typeInfo, depth int) error {
	if p.tok.kind == tokNil {
		if v.Kind() != reflect.Slice {
			return p.lex.errf("array type %s cannot be nil", v.Type())
		}
		if err := p.advance(); err != nil {
			return err
		}
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	var elems []reflect.Value
	for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
		ev := reflect.New(ti.elem).Elem()
		if err := p.parseValue(ev, depth+1); err != nil {
			return err
		}
		elems = append(elems, ev)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return err
	}
	if v.Kind() == reflect.Array {
		if len(elems) > v.Len() {
			if !p.opts.AllowExtraArrayEntries {
				return ErrIncompatible
			}
			elems = elems[:v.Len()]
		}
		for i, ev := range elems {
			v.Index(i).Set(ev)
		}
		return nil
	}
	out := reflect.MakeSlice(v.Type(), len(elems), len(elems))
	for i, ev := range elems {
		out.Index(i).Set(ev)
	}
	v.Set(out)
	return nil
}

func (p *textParser) parseSet(v reflect.Value, ti *typeInfo, depth int) error {
	if p.tok.kind == tokNil {
		if err := p.advance(); err != nil {
			return err
		}
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	out := reflect.MakeMap(v.Type())
	empty := reflect.Zero(v.Type().Elem())
	for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
		kv := reflect.New(ti.key).Elem()
		if err := p.parseValue(kv, depth+1); err != nil {
			return err
		}
		out.SetMapIndex(kv, empty)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return err
	}
	v.Set(out)
	return nil
}

func (p *textParser) parseMap(v reflect.Value, ti *typeInfo, depth int) error {
	if p.tok.kind == tokNil {
		if err := p.advance(); err != nil {
			return err
		}
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	out := reflect.MakeMap(v.Type())
	for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
		kv := reflect.New(ti.key).Elem()
		if p.tok.kind == tokLBracket {
			if err := p.advance(); err != nil {
				return err
			}
			if err := p.parseValue(kv, depth+1); err != nil {
				return err
			}
			if err := p.expect(tokRBracket, "']'"); err != nil {
				return err
			}
		} else if p.tok.kind == tokIdent && ti.key.Kind() == reflect.String {
			kv.SetString(p.tok.text)
			if err := p.advance(); err != nil {
				return err
			}
		} else {
			return p.lex.errf("expected '[' key ']' or a bare string key")
		}
		if err := p.expect(tokEquals, "'='"); err != nil {
			return err
		}
		vv := reflect.New(ti.elem).Elem()
		if err := p.parseValue(vv, depth+1); err != nil {
			return err
		}
		out.SetMapIndex(kv, vv)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return err
	}
	v.Set(out)
	return nil
}

func (p *textParser) parsePairLike(v reflect.Value, depth int) error {
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	n := v.NumField()
	for i := 0; i < n; i++ {
		if err := p.parseValue(v.Field(i), depth+1); err != nil {
			return err
		}
		if i < n-1 {
			if err := p.expect(tokComma, "','"); err != nil {
				return err
			}
		}
	}
	if p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return p.expect(tokRBrace, "'}'")
}

// parseVariant accepts the `{ [idx] = value }` form Format emits. The
// bracketed key is read as a plain integer index; a bare value is not
// matched against the alternatives one by one, so it is rejected with
// StatusBadFormat.
func (p *textParser) parseVariant(v reflect.Value, ti *typeInfo, depth int) error {
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	if err := p.expect(tokLBracket, "'['"); err != nil {
		return err
	}
	if p.tok.kind != tokNumber {
		return p.lex.errf("expected variant index")
	}
	idx, err := parseNumberInt(p.tok.text)
	if err != nil {
		return newErr(StatusBadFormat, "invalid variant index %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expect(tokRBracket, "']'"); err != nil {
		return err
	}
	if err := p.expect(tokEquals, "'='"); err != nil {
		return err
	}
	if int(idx) < 0 || int(idx) >= len(ti.elems) {
		if !p.opts.AllowUnknownVariantValues {
			return ErrBadVariantValue
		}
		if err := p.skipValue(depth + 1); err != nil {
			return err
		}
	} else {
		v.FieldByName("Index").SetInt(idx)
		if err := p.parseValue(v.Field(int(idx)+1), depth+1); err != nil {
			return err
		}
	}
	return p.expect(tokRBrace, "'}'")
}

// skipValue consumes one well-formed value of unknown shape — a scalar
// token or a brace-delimited table — without interpreting it. Used for
// unknown struct keys, deprecated fields, unknown variant alternatives, and
// positional entries beyond an aggregate's field count.
func (p *textParser) skipValue(depth int) error {
	if depth > p.maxDepth() {
		return newErr(StatusStackOverflow, "table literal nested past max depth")
	}
	switch p.tok.kind {
	case tokLBrace:
		if err := p.advance(); err != nil {
			return err
		}
		for p.tok.kind != tokRBrace && p.tok.kind != tokEOF {
			if p.tok.kind == tokLBracket {
				if err := p.advance(); err != nil {
					return err
				}
				if err := p.skipValue(depth + 1); err != nil {
					return err
				}
				if err := p.expect(tokRBracket, "']'"); err != nil {
					return err
				}
				if err := p.expect(tokEquals, "'='"); err != nil {
					return err
				}
				if err := p.skipValue(depth + 1); err != nil {
					return err
				}
			} else if p.tok.kind == tokIdent {
				if err := p.advance(); err != nil {
					return err
				}
				if p.tok.kind == tokEquals {
					if err := p.advance(); err != nil {
						return err
					}
					if err := p.skipValue(depth + 1); err != nil {
						return err
					}
				}
			} else {
				if err := p.skipValue(depth + 1); err != nil {
					return err
				}
			}
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return err
				}
				continue
			}
			break
		}
		return p.expect(tokRBrace, "'}'")
	case tokNil, tokTrue, tokFalse, tokNumber, tokString:
		return p.advance()
	default:
		return p.lex.errf("expected a value")
	}
}
