package tank

// Fragment identifies which part of a statement is being rendered. Writers
// consult it to adjust output, for example column qualification inside
// ORDER BY or placeholder numbering across a whole statement.
type Fragment uint8

const (
	FragmentNone Fragment = iota
	FragmentSelect
	FragmentSelectColumns
	FragmentSelectFrom
	FragmentSelectWhere
	FragmentSelectOrderBy
	FragmentSelectLimit
	FragmentJoin
	FragmentInsert
	FragmentInsertValues
	FragmentInsertOnConflict
	FragmentUpdate
	FragmentDelete
	FragmentDeleteWhere
	FragmentCreateSchema
	FragmentDropSchema
	FragmentCreateTable
	FragmentDropTable
	FragmentCommentOnColumn
	FragmentCasting
	FragmentStringLiteral
	FragmentJSON
	FragmentJSONKey
)

// Context carries rendering state through a statement. Counter numbers
// positional placeholders for dialects that require it, Fragment tracks the
// surrounding clause and QualifyColumns requests table-prefixed column
// names. A Context is passed by pointer so nested expressions can advance
// the counter; fragment changes are scoped with Push.
type Context struct {
	Counter        int
	Fragment       Fragment
	QualifyColumns bool
}

// Push switches the current fragment and returns a restore function. The
// counter keeps advancing across the switch.
func (c *Context) Push(f Fragment) func() {
	prev := c.Fragment
	c.Fragment = f
	return func() { c.Fragment = prev }
}

// PushQualify sets column qualification and returns a restore function.
func (c *Context) PushQualify(q bool) func() {
	prev := c.QualifyColumns
	c.QualifyColumns = q
	return func() { c.QualifyColumns = prev }
}

// NextPlaceholder advances and returns the 1-based placeholder ordinal.
func (c *Context) NextPlaceholder() int {
	c.Counter++
	return c.Counter
}
