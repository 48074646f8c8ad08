package layout

// HAlign is horizontal alignment within a section's bounds.
type HAlign uint8

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

// String returns the alignment's name.
func (a HAlign) String() string {
	switch a {
	case HAlignCenter:
		return "Center"
	case HAlignRight:
		return "Right"
	default:
		return "Left"
	}
}

// VAlign is vertical alignment within a section's bounds.
type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignCenter
	VAlignBottom
)

// String returns the alignment's name.
func (a VAlign) String() string {
	switch a {
	case VAlignCenter:
		return "Center"
	case VAlignBottom:
		return "Bottom"
	default:
		return "Top"
	}
}
