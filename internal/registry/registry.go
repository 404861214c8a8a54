// Package registry holds the fixed set of IRS Schedule C expense categories.
// The set is initialized once at process start and never mutated; every part
// of the application that needs to validate or display a category goes
// through it.
package registry

import "strings"

// Category is one Schedule C reporting category. Line is the form line the
// category reports under; Schedule C lines are not all plain integers
// ("24a", "24b", "27a"), so it stays a string.
type Category struct {
	Name string `json:"name" yaml:"name"`
	Line string `json:"line" yaml:"line"`
}

// scheduleC is the fixed category set in form order.
var scheduleC = []Category{
	{Name: "Advertising", Line: "8"},
	{Name: "Car and Truck Expenses", Line: "9"},
	{Name: "Commissions and Fees", Line: "10"},
	{Name: "Contract Labor", Line: "11"},
	{Name: "Depreciation", Line: "13"},
	{Name: "Employee Benefit Programs", Line: "14"},
	{Name: "Insurance", Line: "15"},
	{Name: "Interest", Line: "16"},
	{Name: "Legal and Professional Services", Line: "17"},
	{Name: "Office Expense", Line: "18"},
	{Name: "Pension and Profit-Sharing Plans", Line: "19"},
	{Name: "Rent or Lease", Line: "20"},
	{Name: "Repairs and Maintenance", Line: "21"},
	{Name: "Supplies", Line: "22"},
	{Name: "Taxes and Licenses", Line: "23"},
	{Name: "Travel", Line: "24a"},
	{Name: "Meals", Line: "24b"},
	{Name: "Utilities", Line: "25"},
	{Name: "Other Expenses", Line: "27a"},
}

// Registry is the process-wide, read-only category table.
type Registry struct {
	categories []Category
	byName     map[string]int
	byLine     map[string]int
}

// New builds the registry. Call once during startup and share the result.
func New() *Registry {
	r := &Registry{
		categories: scheduleC,
		byName:     make(map[string]int, len(scheduleC)),
		byLine:     make(map[string]int, len(scheduleC)),
	}
	for i, c := range scheduleC {
		r.byName[foldName(c.Name)] = i
		r.byLine[c.Line] = i
	}
	return r
}

// All returns every category in form order. The slice is a copy; callers can
// reorder or truncate it freely.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Names returns the category names in form order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}

// ByName looks a category up by name, ignoring case and surrounding
// whitespace. The returned Category carries the canonical spelling.
func (r *Registry) ByName(name string) (Category, bool) {
	i, ok := r.byName[foldName(name)]
	if !ok {
		return Category{}, false
	}
	return r.categories[i], true
}

// ByLine looks a category up by its Schedule C line identifier.
func (r *Registry) ByLine(line string) (Category, bool) {
	i, ok := r.byLine[strings.TrimSpace(line)]
	if !ok {
		return Category{}, false
	}
	return r.categories[i], true
}

// Contains reports whether name resolves to a category.
func (r *Registry) Contains(name string) bool {
	_, ok := r.ByName(name)
	return ok
}

// Len returns the number of categories.
func (r *Registry) Len() int {
	return len(r.categories)
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
