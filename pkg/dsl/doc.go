/*
Package dsl provides a fluent builder for constructing automata in Go code.

It is an alternative to YAML or JSON definition files, useful for tests, fixtures
and generated tables.

Example usage:

	b := dsl.New("ones")
	b.Add("s").Start().On(domain.SymbolI, "one")
	b.Add("one").Accept().On(domain.SymbolI, "two")
	b.Add("two").Accept()
	b.Add("dead").Dead()

	a, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	v := romandfa.Validate(a, "ii") // accepted, value 2
*/
package dsl
