// Package holidays builds the Swedish holiday calendar of a year and answers
// point queries about dates.
//
// The statutory public holidays follow Lag (1989:253) om allmänna helgdagar.
// Julafton, midsommarafton and nyårsafton are not allmänna helgdagar but are
// treated as such by Semesterlag (1977:480) and are included as eves.
package holidays

import "fmt"

// Name identifies one of the holidays in the Swedish calendar.
type Name int

const (
	Nyarsdagen Name = iota + 1
	TrettondedagJul
	Langfredagen
	Paskdagen
	AnnandagPask
	KristiHimmelsfardsdag
	ForstaMaj
	Pingstdagen
	Nationaldagen
	Midsommardagen
	AllaHelgonsDag
	Juldagen
	AnnandagJul
	Julafton
	Midsommarafton
	Nyarsafton
)

// Kind separates statutory public holidays from eves.
type Kind int

const (
	KindPublic Kind = iota + 1 // allmän helgdag
	KindEve                    // afton
)

func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindEve:
		return "eve"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var displayNames = map[Name]string{
	Nyarsdagen:            "nyårsdagen",
	TrettondedagJul:       "trettondedag jul",
	Langfredagen:          "långfredagen",
	Paskdagen:             "påskdagen",
	AnnandagPask:          "annandag påsk",
	KristiHimmelsfardsdag: "kristi himmelsfärdsdag",
	ForstaMaj:             "första maj",
	Pingstdagen:           "pingstdagen",
	Nationaldagen:         "nationaldagen",
	Midsommardagen:        "midsommardagen",
	AllaHelgonsDag:        "alla helgons dag",
	Juldagen:              "juldagen",
	AnnandagJul:           "annandag jul",
	Julafton:              "julafton",
	Midsommarafton:        "midsommarafton",
	Nyarsafton:            "nyårsafton",
}

// Names returns every holiday name in calendar-law order.
func Names() []Name {
	names := make([]Name, 0, len(displayNames))
	for n := Nyarsdagen; n <= Nyarsafton; n++ {
		names = append(names, n)
	}
	return names
}

// String returns the Swedish display name, e.g. "påskdagen".
func (n Name) String() string {
	if s, ok := displayNames[n]; ok {
		return s
	}
	return fmt.Sprintf("Name(%d)", int(n))
}

// Kind reports whether n is an allmän helgdag or an eve.
func (n Name) Kind() Kind {
	switch n {
	case Julafton, Midsommarafton, Nyarsafton:
		return KindEve
	default:
		return KindPublic
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if _, ok := displayNames[n]; !ok {
		return nil, fmt.Errorf("unknown holiday name %d", int(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// ParseName maps a Swedish display name back to its Name.
func ParseName(s string) (Name, error) {
	for name, display := range displayNames {
		if display == s {
			return name, nil
		}
	}
	return 0, fmt.Errorf("unknown holiday name %q", s)
}
