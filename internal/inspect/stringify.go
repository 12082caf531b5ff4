package inspect

// Ellipsis stands in for any part of a value a summary does not show.
const Ellipsis = "…"

// Stringify renders a compact one-line summary of v, used to label history
// entries. Tagged values show their tag and, when present, only their last
// argument:
//
//	Increment            -> Increment
//	SetName "ann"        -> SetName "ann"
//	Move 1 2 3           -> Move … 3
//
// Containers, records and internal values collapse to Ellipsis.
func Stringify(v Value) string {
	return Inspector{}.Stringify(v)
}

// Stringify is like the package-level Stringify but honours MaxDepth.
func (in Inspector) Stringify(v Value) string {
	return stringifyHelp(v, in.maxDepth())
}

func stringifyHelp(v Value, budget int) string {
	if budget < 0 {
		return Ellipsis
	}
	switch v := v.(type) {
	case Bool:
		if v {
			return "True"
		}
		return "False"
	case Int:
		return v.text()
	case Float:
		return v.text()
	case String:
		return Quote(string(v))
	case Char:
		return QuoteChar(rune(v))
	case Tagged:
		if tagClass(v.Tag) != tagUser {
			return Ellipsis
		}
		// Field count includes the tag itself.
		switch len(v.Args) + 1 {
		case 1:
			return v.Tag
		case 2:
			return v.Tag + " " + stringifyHelp(v.Args[0], budget-1)
		default:
			return v.Tag + " " + Ellipsis + " " + stringifyHelp(v.Args[len(v.Args)-1], budget-1)
		}
	}
	return Ellipsis
}
