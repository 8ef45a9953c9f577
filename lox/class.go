package lox

// Class is a runtime class value. Superclass methods are never copied
// into the table; lookup chains through FindMethod at call time so
// overrides stay virtual.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// FindMethod walks the inheritance chain nearest-first.
func (c *Class) FindMethod(name string) *Function {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity of a class is the arity of its init method, or zero.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Instance pairs a class back-reference with a field map. Fields are
// created lazily on first assignment.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func newInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}
