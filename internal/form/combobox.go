package form

import (
	"fmt"
	"slices"

	"recruitadmin/internal/domain"
	"recruitadmin/internal/utils"
)

// FilterOptions keeps options whose label contains q, case-insensitively. Empty q keeps all.
func FilterOptions(opts []domain.Option, q string) []domain.Option {
	q = utils.TrimOrEmpty(q)
	if q == "" {
		return opts
	}
	out := make([]domain.Option, 0, len(opts))
	for _, o := range opts {
		if utils.ContainsFold(o.Label, q) {
			out = append(out, o)
		}
	}
	return out
}

// Combobox is the state of a searchable select: a query, a focus cursor over the
// filtered options, and the committed value(s).
type Combobox struct {
	options  []domain.Option
	multiple bool
	query    string
	open     bool
	cursor   int
	value    string
	values   []string
}

func NewCombobox(options []domain.Option, multiple bool) *Combobox {
	return &Combobox{options: options, multiple: multiple}
}

// ComboboxState is what a browser keeps between two key presses.
type ComboboxState struct {
	Query  string   `json:"query" form:"q"`
	Open   bool     `json:"open" form:"open"`
	Cursor int      `json:"cursor" form:"cursor"`
	Value  string   `json:"value" form:"value"`
	Values []string `json:"values" form:"values"`
}

// RestoreCombobox resumes a combobox from st. The cursor is clamped to the filtered options.
func RestoreCombobox(options []domain.Option, multiple bool, st ComboboxState) *Combobox {
	c := &Combobox{
		options:  options,
		multiple: multiple,
		query:    st.Query,
		open:     st.Open,
		value:    st.Value,
		values:   append([]string(nil), st.Values...),
	}
	c.cursor = max(0, min(st.Cursor, len(c.Filtered())-1))
	return c
}

func (c *Combobox) State() ComboboxState {
	return ComboboxState{Query: c.query, Open: c.open, Cursor: c.cursor, Value: c.value, Values: c.Values()}
}

// Key names accepted by Press, matching KeyboardEvent.key for the keyboard ones.
const (
	KeyDown   = "ArrowDown"
	KeyUp     = "ArrowUp"
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
	KeyType   = "type"
	KeyOpen   = "open"
	KeyRemove = "remove"
	KeyInject = "inject"
)

// Press applies one key; arg is the typed text for KeyType and the value for KeyRemove
// and KeyInject. It reports whether a value was committed.
func (c *Combobox) Press(key, arg string) (bool, error) {
	switch key {
	case KeyDown:
		c.Down()
	case KeyUp:
		c.Up()
	case KeyEnter:
		return c.Enter(), nil
	case KeyEscape:
		c.Escape()
	case KeyType:
		c.Type(arg)
	case KeyOpen:
		c.Open()
	case KeyRemove:
		c.Remove(arg)
	case KeyInject:
		if arg == "" {
			return false, fmt.Errorf("combobox: inject needs a value")
		}
		c.Inject(arg)
		return true, nil
	default:
		return false, fmt.Errorf("combobox: unknown key %q", key)
	}
	return false, nil
}

func (c *Combobox) Open() {
	c.open = true
	c.cursor = 0
}

func (c *Combobox) IsOpen() bool { return c.open }

// Type sets the filter text and opens the list with the cursor on the first match.
func (c *Combobox) Type(q string) {
	c.query = q
	c.Open()
}

func (c *Combobox) Filtered() []domain.Option { return FilterOptions(c.options, c.query) }

// Focused returns the option under the cursor.
func (c *Combobox) Focused() (domain.Option, bool) {
	f := c.Filtered()
	if !c.open || len(f) == 0 {
		return domain.Option{}, false
	}
	return f[c.cursor], true
}

func (c *Combobox) Down() {
	if !c.open {
		c.Open()
		return
	}
	if n := len(c.Filtered()); c.cursor < n-1 {
		c.cursor++
	}
}

func (c *Combobox) Up() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// Enter commits the focused option. Single mode closes the list; multiple mode toggles and stays open.
func (c *Combobox) Enter() bool {
	o, ok := c.Focused()
	if !ok {
		return false
	}
	if c.multiple {
		c.toggle(o.Value)
		return true
	}
	c.value = o.Value
	c.query = ""
	c.open = false
	return true
}

// Escape closes the list without committing.
func (c *Combobox) Escape() {
	c.open = false
	c.query = ""
}

func (c *Combobox) toggle(v string) {
	if i := slices.Index(c.values, v); i >= 0 {
		c.values = slices.Delete(c.values, i, i+1)
		return
	}
	c.values = append(c.values, v)
}

// Remove drops v from the selection.
func (c *Combobox) Remove(v string) {
	if c.multiple {
		if i := slices.Index(c.values, v); i >= 0 {
			c.values = slices.Delete(c.values, i, i+1)
		}
		return
	}
	if c.value == v {
		c.value = ""
	}
}

// Inject sets a value supplied by the host's action button, even one not in the options.
func (c *Combobox) Inject(v string) {
	if c.multiple {
		if !slices.Contains(c.values, v) {
			c.values = append(c.values, v)
		}
		return
	}
	c.value = v
}

func (c *Combobox) Value() string { return c.value }

func (c *Combobox) Values() []string { return append([]string(nil), c.values...) }
