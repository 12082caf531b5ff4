package expando

// Init prepares a freshly classified value for display. Only the outermost
// node starts expanded, and an outer sequence only while it is short.
func Init(e Expando) Expando {
	return initHelp(true, e)
}

const shortSequence = 8

func initHelp(outer bool, e Expando) Expando {
	switch e := e.(type) {
	case Sequence:
		items := mapAll(e.Items, false)
		return Sequence{Kind: e.Kind, Expanded: outer && len(items) <= shortSequence, Items: items}
	case Dictionary:
		entries := make([]KeyValue, len(e.Entries))
		for i, kv := range e.Entries {
			entries[i] = KeyValue{Key: initHelp(false, kv.Key), Value: initHelp(false, kv.Value)}
		}
		return Dictionary{Expanded: outer, Entries: entries}
	case Record:
		fields := make(map[string]Expando, len(e.Fields))
		for name, v := range e.Fields {
			fields[name] = initHelp(false, v)
		}
		return Record{Expanded: outer, Fields: fields}
	case Constructor:
		args := mapAll(e.Args, false)
		return Constructor{Name: e.Name, Expanded: outer, Args: args}
	}
	return e
}

func mapAll(items []Expando, outer bool) []Expando {
	if items == nil {
		return nil
	}
	out := make([]Expando, len(items))
	for i, it := range items {
		out[i] = initHelp(outer, it)
	}
	return out
}

// Toggle flips the expanded flag of the node at path, where each step is an
// index into Children. An invalid path returns e unchanged.
func Toggle(e Expando, path []int) Expando {
	if len(path) == 0 {
		return setExpanded(e, !IsExpanded(e))
	}
	i, rest := path[0], path[1:]
	switch e := e.(type) {
	case Sequence:
		if i < 0 || i >= len(e.Items) {
			return e
		}
		items := append([]Expando(nil), e.Items...)
		items[i] = Toggle(items[i], rest)
		e.Items = items
		return e
	case Dictionary:
		if i < 0 || i >= len(e.Entries) {
			return e
		}
		entries := append([]KeyValue(nil), e.Entries...)
		entries[i].Value = Toggle(entries[i].Value, rest)
		e.Entries = entries
		return e
	case Record:
		names := e.FieldNames()
		if i < 0 || i >= len(names) {
			return e
		}
		fields := make(map[string]Expando, len(e.Fields))
		for k, v := range e.Fields {
			fields[k] = v
		}
		fields[names[i]] = Toggle(fields[names[i]], rest)
		e.Fields = fields
		return e
	case Constructor:
		if i < 0 || i >= len(e.Args) {
			return e
		}
		args := append([]Expando(nil), e.Args...)
		args[i] = Toggle(args[i], rest)
		e.Args = args
		return e
	}
	return e
}

func setExpanded(e Expando, expanded bool) Expando {
	switch e := e.(type) {
	case Sequence:
		e.Expanded = expanded
		return e
	case Dictionary:
		e.Expanded = expanded
		return e
	case Record:
		e.Expanded = expanded
		return e
	case Constructor:
		e.Expanded = expanded
		return e
	}
	return e
}

// Merge carries the expanded flags of old over to next wherever the two
// trees have the same shape, so re-inspecting a changed value keeps the
// user's open and closed nodes.
func Merge(old, next Expando) Expando {
	switch n := next.(type) {
	case Sequence:
		o, ok := old.(Sequence)
		if !ok || o.Kind != n.Kind {
			return next
		}
		n.Expanded = o.Expanded
		n.Items = mergeSlices(o.Items, n.Items)
		return n
	case Dictionary:
		o, ok := old.(Dictionary)
		if !ok {
			return next
		}
		n.Expanded = o.Expanded
		entries := make([]KeyValue, len(n.Entries))
		for i, kv := range n.Entries {
			entries[i] = kv
			if i < len(o.Entries) {
				entries[i].Value = Merge(o.Entries[i].Value, kv.Value)
			}
		}
		n.Entries = entries
		return n
	case Record:
		o, ok := old.(Record)
		if !ok {
			return next
		}
		n.Expanded = o.Expanded
		fields := make(map[string]Expando, len(n.Fields))
		for name, v := range n.Fields {
			if ov, ok := o.Fields[name]; ok {
				fields[name] = Merge(ov, v)
			} else {
				fields[name] = v
			}
		}
		n.Fields = fields
		return n
	case Constructor:
		o, ok := old.(Constructor)
		if !ok || o.Name != n.Name {
			return next
		}
		n.Expanded = o.Expanded
		n.Args = mergeSlices(o.Args, n.Args)
		return n
	}
	return next
}

func mergeSlices(old, next []Expando) []Expando {
	if next == nil {
		return nil
	}
	out := make([]Expando, len(next))
	for i, n := range next {
		if i < len(old) {
			out[i] = Merge(old[i], n)
		} else {
			out[i] = n
		}
	}
	return out
}
