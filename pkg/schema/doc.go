// Package schema validates whole request payloads against an ordered set of
// constrained fields.
//
// Unlike the request pipeline, which stops at the first problem, a schema
// checks every field and returns all errors in one Outcome so a client can
// fix everything in one round trip.
//
//	s := schema.MustNew("signup",
//		schema.Required("username", field.Username()),
//		schema.Required("email", field.Email()),
//		schema.Optional("bio", field.SafeText(0, 500)),
//	)
//	out := s.Validate(payload)
//	if !out.Valid() {
//		return out.Err()
//	}
//	name, _ := schema.Get[string](out.Instance, "username")
//
// Undeclared keys are rejected unless the schema is built with
// WithExtraFields(ExtraFieldsIgnore).
package schema
