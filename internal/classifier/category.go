package classifier

import "fmt"

// Category is the routing decision for a package
type Category int

const (
	Standard Category = iota // neither bulky nor heavy
	Special                  // bulky or heavy, not both
	Rejected                 // bulky and heavy
)

var categoryNames = map[Category]string{
	Standard: "STANDARD",
	Special:  "SPECIAL",
	Rejected: "REJECTED",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	name, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory returns the Category with the given name
func ParseCategory(name string) (Category, error) {
	for c, n := range categoryNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}
