package model

import "math"

// Checklist tracks which steps of a project are checked
type Checklist struct {
	checked []bool
}

// NewChecklist seeds a checklist from a project's stored progress. The
// first floor(progress*len(steps)) steps start checked; the epsilon keeps
// a saved k/n from reopening as k-1 after float rounding.
func NewChecklist(p Project) *Checklist {
	n := len(p.Steps)
	initial := int(math.Floor(p.Progress*float64(n) + 1e-9))
	if initial > n {
		initial = n
	}
	c := &Checklist{checked: make([]bool, n)}
	for i := 0; i < initial; i++ {
		c.checked[i] = true
	}
	return c
}

// Len returns the number of steps
func (c *Checklist) Len() int {
	return len(c.checked)
}

// Checked reports whether step i is checked
func (c *Checklist) Checked(i int) bool {
	if i < 0 || i >= len(c.checked) {
		return false
	}
	return c.checked[i]
}

// Set checks or unchecks step i. Out-of-range indexes are ignored.
func (c *Checklist) Set(i int, checked bool) {
	if i < 0 || i >= len(c.checked) {
		return
	}
	c.checked[i] = checked
}

// Toggle flips step i
func (c *Checklist) Toggle(i int) {
	c.Set(i, !c.Checked(i))
}

// CheckedCount returns how many steps are checked
func (c *Checklist) CheckedCount() int {
	n := 0
	for _, v := range c.checked {
		if v {
			n++
		}
	}
	return n
}

// Progress is checked/total, or 0 for a project without steps
func (c *Checklist) Progress() float64 {
	if len(c.checked) == 0 {
		return 0
	}
	return float64(c.CheckedCount()) / float64(len(c.checked))
}

// Complete reports whether every step is checked
func (c *Checklist) Complete() bool {
	return len(c.checked) > 0 && c.CheckedCount() == len(c.checked)
}
