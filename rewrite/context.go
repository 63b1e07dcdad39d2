package rewrite

// Context carries per-run state for one recipe applied to one unit.
type Context struct {
	recipe   string
	unit     string
	followUp []TreeVisitor
	keys     map[string]bool
	found    []ID
	touched  []ID
	seen     map[ID]bool
	warnings []error
}

func NewContext(recipe, unit string) *Context {
	return &Context{
		recipe: recipe,
		unit:   unit,
		keys:   make(map[string]bool),
		seen:   make(map[ID]bool),
	}
}

func (c *Context) Recipe() string { return c.recipe }
func (c *Context) Unit() string   { return c.unit }

// AndThen schedules v to run on the whole unit after the current visitor.
func (c *Context) AndThen(v TreeVisitor) {
	if k, ok := v.(Keyed); ok {
		if c.keys[k.Key()] {
			return
		}
		c.keys[k.Key()] = true
	}
	c.followUp = append(c.followUp, v)
}

func (c *Context) Found(id ID) {
	c.found = append(c.found, id)
}

// Touch records that the node with id was replaced by a new version.
func (c *Context) Touch(id ID) {
	if c.seen[id] {
		return
	}
	c.seen[id] = true
	c.touched = append(c.touched, id)
}

func (c *Context) Warn(err error) {
	c.warnings = append(c.warnings, err)
}

func (c *Context) FoundIDs() []ID   { return append([]ID(nil), c.found...) }
func (c *Context) TouchedIDs() []ID { return append([]ID(nil), c.touched...) }
func (c *Context) Warnings() []error {
	return append([]error(nil), c.warnings...)
}

// drain runs scheduled follow-ups in order. Follow-ups may schedule more.
func (c *Context) drain(file SourceFile) (SourceFile, error) {
	for len(c.followUp) > 0 {
		v := c.followUp[0]
		c.followUp = c.followUp[1:]
		next, err := v.Visit(file, c)
		if err != nil {
			return file, err
		}
		file = next
	}
	return file, nil
}

// Drain runs the scheduled follow-ups. Recipe tests use it to apply a
// visitor without a pipeline.
func (c *Context) Drain(file SourceFile) (SourceFile, error) {
	return c.drain(file)
}
