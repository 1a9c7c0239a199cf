package constantpool

// Validate checks that every cross-reference in the pool resolves to
// an entry of the variant its holder requires. The walk is an explicit
// worklist with a visited set keyed by slot position: each entry is
// validated at most once and reference cycles terminate. The first
// violation rejects the whole pool; a partially valid pool is never
// trusted. Validate does not mutate the pool and may be called any
// number of times.
func (p *Pool) Validate() error {
	visited := make([]bool, len(p.slots))
	work := make([]Index, 0, len(p.slots))
	for i := len(p.slots); i >= 1; i-- {
		if p.slots[i-1] == nil {
			continue
		}
		work = append(work, Index(i))
	}

	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		if visited[i-1] {
			continue
		}
		visited[i-1] = true

		refs, err := p.check(i)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if !visited[ref-1] {
				work = append(work, ref)
			}
		}
	}
	return nil
}

// check verifies the entry's own reference fields and returns the
// indices it refers to, for the traversal to follow. Returned indices
// have already resolved to live entries.
func (p *Pool) check(i Index) ([]Index, error) {
	c, err := p.Entry(i)
	if err != nil {
		return nil, err
	}

	switch c := c.(type) {
	case Class:
		if !p.holds(c.NameIndex, TagUTF8) {
			return nil, &ValidationError{Violation: ViolationClassNameIndex, Index: i}
		}
		return []Index{c.NameIndex}, nil
	case FieldRef:
		if !p.holds(c.ClassIndex, TagClass) {
			return nil, &ValidationError{Violation: ViolationFieldClassIndex, Index: i}
		}
		if !p.holds(c.NameAndTypeIndex, TagNameAndType) {
			return nil, &ValidationError{Violation: ViolationFieldNameAndTypeIndex, Index: i}
		}
		return []Index{c.ClassIndex, c.NameAndTypeIndex}, nil
	case MethodRef:
		if !p.holds(c.ClassIndex, TagClass) {
			return nil, &ValidationError{Violation: ViolationMethodClassIndex, Index: i}
		}
		if !p.holds(c.NameAndTypeIndex, TagNameAndType) {
			return nil, &ValidationError{Violation: ViolationMethodNameAndTypeIndex, Index: i}
		}
		return []Index{c.ClassIndex, c.NameAndTypeIndex}, nil
	case InterfaceMethodRef:
		if !p.holds(c.ClassIndex, TagClass) {
			return nil, &ValidationError{Violation: ViolationInterfaceMethodClassIndex, Index: i}
		}
		if !p.holds(c.NameAndTypeIndex, TagNameAndType) {
			return nil, &ValidationError{Violation: ViolationInterfaceMethodNameAndTypeIndex, Index: i}
		}
		return []Index{c.ClassIndex, c.NameAndTypeIndex}, nil
	case String:
		if !p.holds(c.StringIndex, TagUTF8) {
			return nil, &ValidationError{Violation: ViolationStringUTF8Index, Index: i}
		}
		return []Index{c.StringIndex}, nil
	case NameAndType:
		if !p.holds(c.NameIndex, TagUTF8) {
			return nil, &ValidationError{Violation: ViolationNameAndTypeNameIndex, Index: i}
		}
		if !p.holds(c.DescriptorIndex, TagUTF8) {
			return nil, &ValidationError{Violation: ViolationNameAndTypeDescriptorIndex, Index: i}
		}
		return []Index{c.NameIndex, c.DescriptorIndex}, nil
	case MethodType:
		if !p.holds(c.DescriptorIndex, TagUTF8) {
			return nil, &ValidationError{Violation: ViolationMethodTypeDescriptorIndex, Index: i}
		}
		return []Index{c.DescriptorIndex}, nil
	case InvokeDynamic:
		// BootstrapMethodAttrIndex refers into the BootstrapMethods
		// attribute, which is opaque at this level; it is not validated.
		if !p.holds(c.NameAndTypeIndex, TagNameAndType) {
			return nil, &ValidationError{Violation: ViolationInvokeDynamicNameAndTypeIndex, Index: i}
		}
		return []Index{c.NameAndTypeIndex}, nil
	case MethodHandle:
		return p.checkMethodHandle(i, c)
	default:
		// Integer, Float, Long, Double, UTF8 are leaves.
		return nil, nil
	}
}

func (p *Pool) checkMethodHandle(i Index, h MethodHandle) ([]Index, error) {
	fail := &ValidationError{Violation: ViolationMethodHandleReference, Index: i}

	switch h.Kind {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		if !p.holds(h.ReferenceIndex, TagFieldRef) {
			return nil, fail
		}
	case RefInvokeVirtual, RefInvokeStatic, RefInvokeSpecial:
		if !p.holds(h.ReferenceIndex, TagMethodRef) {
			return nil, fail
		}
	case RefInvokeInterface:
		if !p.holds(h.ReferenceIndex, TagInterfaceMethodRef) {
			return nil, fail
		}
	case RefNewInvokeSpecial:
		// Must denote a constructor: the referenced method's resolved
		// name is exactly <init>.
		name, err := p.methodName(h.ReferenceIndex)
		if err != nil || name != "<init>" {
			return nil, fail
		}
	default:
		return nil, fail
	}
	return []Index{h.ReferenceIndex}, nil
}

// methodName resolves a MethodRef's name text through its NameAndType.
func (p *Pool) methodName(i Index) (string, error) {
	c, err := p.Entry(i)
	if err != nil {
		return "", err
	}
	m, ok := c.(MethodRef)
	if !ok {
		return "", mismatch(i, c, TagMethodRef)
	}
	nat, err := p.NameAndTypeAt(m.NameAndTypeIndex)
	if err != nil {
		return "", err
	}
	return p.UTF8(nat.NameIndex)
}

func (p *Pool) holds(i Index, t Tag) bool {
	c, err := p.Entry(i)
	return err == nil && c.Tag() == t
}
