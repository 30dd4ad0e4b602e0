package lox

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func TestEnvironment(t *testing.T) { TestingT(t) }

type EnvironmentSuite struct{}

var _ = Suite(&EnvironmentSuite{})

func (s *EnvironmentSuite) TestDefineAndGet(c *C) {
	env := NewEnvironment()
	env.Define("x", NumberValue(1))

	v, ok := env.Get("x")
	c.Assert(ok, Equals, true)
	c.Assert(v.Number, Equals, 1.0)
}

func (s *EnvironmentSuite) TestGetUndefinedFails(c *C) {
	env := NewEnvironment()
	_, ok := env.Get("missing")
	c.Assert(ok, Equals, false)
}

func (s *EnvironmentSuite) TestDefineRedefinesInSameScope(c *C) {
	env := NewEnvironment()
	env.Define("x", NumberValue(1))
	env.Define("x", NumberValue(2))

	v, ok := env.Get("x")
	c.Assert(ok, Equals, true)
	c.Assert(v.Number, Equals, 2.0)
}

func (s *EnvironmentSuite) TestChildSeesParentBindings(c *C) {
	parent := NewEnvironment()
	parent.Define("x", StringValue("outer"))
	child := NewChildEnvironment(parent)

	v, ok := child.Get("x")
	c.Assert(ok, Equals, true)
	c.Assert(v.Text, Equals, "outer")
}

func (s *EnvironmentSuite) TestChildShadowsParentWithoutMutatingIt(c *C) {
	parent := NewEnvironment()
	parent.Define("x", StringValue("outer"))
	child := NewChildEnvironment(parent)
	child.Define("x", StringValue("inner"))

	v, _ := child.Get("x")
	c.Assert(v.Text, Equals, "inner")

	v, _ = parent.Get("x")
	c.Assert(v.Text, Equals, "outer")
}

func (s *EnvironmentSuite) TestAssignWalksOutwardToDefiningScope(c *C) {
	parent := NewEnvironment()
	parent.Define("x", NumberValue(1))
	child := NewChildEnvironment(parent)

	err := child.Assign("x", NumberValue(2))
	c.Assert(err, IsNil)

	v, _ := parent.Get("x")
	c.Assert(v.Number, Equals, 2.0)

	// The child never acquired its own binding for x.
	c.Assert(child.values, HasLen, 0)
}

func (s *EnvironmentSuite) TestAssignNeverCreatesNewBinding(c *C) {
	env := NewEnvironment()
	err := env.Assign("never-defined", NumberValue(1))
	c.Assert(err, ErrorMatches, `Variable 'never-defined' does not exist\.`)

	_, ok := env.Get("never-defined")
	c.Assert(ok, Equals, false)
}
