/*
Package dsl provides a fluent builder for constructing palisade route tables
in Go, as an alternative to YAML tables or Loam directories. It is useful for
dynamic table generation, unit tests and hosts that prefer type-checked
declarations with IDE support.

Example usage:

	b := dsl.New()

	b.Route("/login").
		Title("Sign in")

	b.Route("/account").
		Title("Your account").
		Guard("auth").
		Meta("login", "/login")

	b.Route("/admin").
		Guard("auth").
		Guard("role:admin").
		GuardFunc("office-hours", officeHours)

	loader, err := b.Build()
	// pass loader to palisade.New(...)
*/
package dsl
