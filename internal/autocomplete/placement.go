package autocomplete

// Placement is where the dropdown renders relative to the composer
type Placement int

const (
	Below Placement = iota
	Above
)

func (p Placement) String() string {
	if p == Above {
		return "above"
	}
	return "below"
}

// Place picks a side for a dropdown of the given height. It flips above only
// when it does not fit below and there is more room above.
func Place(height, spaceAbove, spaceBelow int) Placement {
	if spaceBelow < height && spaceAbove > spaceBelow {
		return Above
	}
	return Below
}
